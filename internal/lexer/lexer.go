package lexer

import (
	"fmt"
	"strings"

	"github.com/q12we34rt5/tabularpcn/internal/stream"
	"github.com/q12we34rt5/tabularpcn/internal/types"
)

// Lexer turns a character stream into SGF tokens. It holds no state
// between calls beyond the stream position, so tokens are produced
// lazily one at a time.
type Lexer struct {
	in       stream.Input
	last     Token
	total    int
	progress func(pos, total int)
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithProgress installs a callback fired after every non-EOF token with
// the current stream position and the total input length.
func WithProgress(total int, fn func(pos, total int)) Option {
	return func(l *Lexer) {
		l.total = total
		l.progress = fn
	}
}

func New(in stream.Input, opts ...Option) *Lexer {
	l := &Lexer{in: in}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NextToken scans and returns the next token. After the end of the
// stream it keeps returning TokenEOF.
func (l *Lexer) NextToken() (Token, error) {
	tok, err := l.next()
	if err != nil {
		return Token{}, err
	}
	l.last = tok
	if tok.Type != TokenEOF && l.progress != nil {
		l.progress(l.in.Tell(), l.total)
	}
	return tok, nil
}

// CurrentToken returns the most recently scanned token.
func (l *Lexer) CurrentToken() Token { return l.last }

func (l *Lexer) next() (Token, error) {
	for {
		c := l.in.Get()
		switch {
		case c == 0:
			pos := l.in.Tell()
			return Token{Type: TokenEOF, Start: pos, End: pos}, nil
		case c == '(':
			return l.punct(TokenLeftParen, c), nil
		case c == ')':
			return l.punct(TokenRightParen, c), nil
		case c == ';':
			return l.punct(TokenSemicolon, c), nil
		case c == '[':
			return l.lexValue()
		case isTagChar(c):
			return l.lexTag(c), nil
		case isSpace(c):
			continue
		default:
			return Token{}, &types.LexicalError{
				Msg:   fmt.Sprintf("invalid character %q", c),
				Start: l.in.Tell() - 1,
				End:   l.in.Tell(),
			}
		}
	}
}

func (l *Lexer) punct(t TokenType, c byte) Token {
	end := l.in.Tell()
	return Token{Type: t, Value: string(c), Start: end - 1, End: end}
}

// lexValue scans a bracketed value. A backslash marks an escape: the
// escaped character loses any special meaning, but the backslash itself
// is kept in the value so that serialization reproduces the input
// byte for byte.
func (l *Lexer) lexValue() (Token, error) {
	var b strings.Builder
	escape := false
	for {
		c := l.in.Get()
		if c == 0 {
			pos := l.in.Tell()
			return Token{}, &types.LexicalError{
				Msg:   "unexpected end of input in property value",
				Start: pos,
				End:   pos,
			}
		}
		if c == ']' && !escape {
			break
		}
		if c == '\\' && !escape {
			b.WriteByte(c)
			escape = true
			continue
		}
		b.WriteByte(c)
		escape = false
	}
	end := l.in.Tell()
	value := b.String()
	return Token{Type: TokenValue, Value: value, Start: end - len(value) - 1, End: end}, nil
}

func (l *Lexer) lexTag(first byte) Token {
	tag := []byte{first}
	for {
		c := l.in.Peek()
		if c == 0 || !isTagChar(c) {
			break
		}
		tag = append(tag, l.in.Get())
	}
	end := l.in.Tell()
	return Token{Type: TokenTag, Value: string(tag), Start: end - len(tag), End: end}
}

func isTagChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
