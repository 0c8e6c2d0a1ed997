package parser

import (
	"github.com/q12we34rt5/tabularpcn/internal/lexer"
	"github.com/q12we34rt5/tabularpcn/internal/stream"
	"github.com/q12we34rt5/tabularpcn/internal/tree"
	"github.com/q12we34rt5/tabularpcn/internal/types"
)

// Allocator is the node allocation strategy injected into the parser.
// The owner behind it tracks every allocated node so the whole parse
// result can be released as a unit.
type Allocator interface {
	// Allocate returns a fresh tracked node.
	Allocate() *tree.Node
	// Deallocate releases a previously allocated node; releasing an
	// untracked node is a no-op.
	Deallocate(*tree.Node)
}

// state is the bitmask of token kinds legal at the current position.
type state uint16

const (
	stateLeftParen state = 1 << iota
	stateRightParen
	stateSemicolon
	stateTag
	stateValue
)

type frameKind uint8

const (
	frameLeftParen frameKind = iota
	frameNode
)

// frame is one entry of the explicit parse stack: either an open
// parenthesis (with its offsets, for unmatched-paren diagnostics) or
// the node that was current when a branch opened.
type frame struct {
	kind  frameKind
	start int
	end   int
	node  *tree.Node
}

// Parser is a resumable pull parser over an SGF token stream. Each
// NextNode call picks up exactly where the previous one stopped and
// returns at most one newly completed node; all state needed to resume
// lives in the Parser itself.
type Parser struct {
	lex   *lexer.Lexer
	alloc Allocator

	stack   []frame
	dummy   *tree.Node
	current *tree.Node
	next    state

	pendingTag    string
	pendingValues []string

	root *tree.Node
	done bool
}

func New(in stream.Input, alloc Allocator, opts ...lexer.Option) *Parser {
	dummy := &tree.Node{}
	return &Parser{
		lex:     lexer.New(in, opts...),
		alloc:   alloc,
		dummy:   dummy,
		current: dummy,
		next:    stateLeftParen,
	}
}

// NextNode consumes tokens until a node is completed and returns it. A
// node completes when a semicolon or right parenthesis flushes its last
// pending property. It returns (nil, nil) once the stream is exhausted;
// callers must keep calling until then, because unmatched left
// parentheses are only detectable at end of stream. After clean
// completion the real root is available through Root.
func (p *Parser) NextNode() (*tree.Node, error) {
	if p.done {
		return nil, nil
	}
	for {
		tok, err := p.lex.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == lexer.TokenEOF {
			break
		}
		switch tok.Type {
		case lexer.TokenLeftParen:
			if p.next&stateLeftParen == 0 {
				return nil, grammarError("unexpected left parenthesis", tok)
			}
			p.stack = append(p.stack, frame{kind: frameNode, node: p.current})
			p.stack = append(p.stack, frame{kind: frameLeftParen, start: tok.Start, end: tok.End})
			p.next = stateSemicolon

		case lexer.TokenRightParen:
			if p.next&stateRightParen == 0 {
				return nil, grammarError("unexpected right parenthesis", tok)
			}
			if len(p.stack) == 0 {
				return nil, grammarError("unmatched right parenthesis", tok)
			}
			emitted, err := p.flushPending()
			if err != nil {
				return nil, err
			}
			// pop down to and including the matching '('
			for {
				if len(p.stack) == 0 {
					return nil, grammarError("unmatched right parenthesis", tok)
				}
				if p.pop().kind == frameLeftParen {
					break
				}
			}
			p.current = p.pop().node
			p.next = stateLeftParen | stateRightParen
			if emitted != nil {
				return emitted, nil
			}

		case lexer.TokenSemicolon:
			if p.next&stateSemicolon == 0 {
				return nil, grammarError("unexpected semicolon", tok)
			}
			emitted, err := p.flushPending()
			if err != nil {
				return nil, err
			}
			if p.current == p.dummy && p.dummy.FirstChild != nil {
				return nil, grammarError("multiple game trees", tok)
			}
			p.stack = append(p.stack, frame{kind: frameNode, node: p.current})
			node := p.alloc.Allocate()
			p.current.AddChild(node)
			p.current = node
			p.next = stateTag
			if emitted != nil {
				return emitted, nil
			}

		case lexer.TokenTag:
			if p.next&stateTag == 0 {
				return nil, grammarError("unexpected tag "+tok.Value, tok)
			}
			// flushing here never completes the node: the new tag keeps
			// the current node open
			if _, err := p.flushPending(); err != nil {
				return nil, err
			}
			p.pendingTag = tok.Value
			p.next = stateValue

		case lexer.TokenValue:
			if p.next&stateValue == 0 {
				return nil, grammarError("unexpected value "+tok.Value, tok)
			}
			p.pendingValues = append(p.pendingValues, tok.Value)
			p.next = stateLeftParen | stateRightParen | stateSemicolon | stateTag | stateValue
		}
	}

	// end of stream: every '(' frame still on the stack is unmatched;
	// report the innermost one
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i].kind == frameLeftParen {
			f := p.stack[i]
			p.stack = p.stack[:i]
			return nil, &types.GrammarError{Msg: "unmatched left parenthesis", Start: f.start, End: f.end}
		}
	}
	p.stack = nil
	p.done = true
	if child := p.dummy.FirstChild; child != nil {
		p.root = child.Detach()
	}
	return nil, nil
}

// Root returns the root of the parsed tree. It is nil until NextNode
// has returned the nil sentinel.
func (p *Parser) Root() *tree.Node { return p.root }

// flushPending stores the cached tag/value pair into the current node
// and reports which node may have just been completed.
func (p *Parser) flushPending() (*tree.Node, error) {
	if len(p.pendingValues) == 0 {
		return nil, nil
	}
	if err := p.current.AddProperty(p.pendingTag, p.pendingValues); err != nil {
		return nil, err
	}
	p.pendingTag = ""
	p.pendingValues = nil
	return p.current, nil
}

func (p *Parser) pop() frame {
	f := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return f
}

func grammarError(msg string, tok lexer.Token) error {
	return &types.GrammarError{Msg: msg, Start: tok.Start, End: tok.End}
}
