// Package sgf loads SGF game trees produced by an AND/OR proof-number
// solver, annotates every node with subtree and proof-tree sizes, and
// serializes the annotated tree back to SGF with the statistics embedded
// in the comment property.
package sgf

import (
	"github.com/q12we34rt5/tabularpcn/internal/lexer"
	"github.com/q12we34rt5/tabularpcn/internal/parser"
	"github.com/q12we34rt5/tabularpcn/internal/stream"
	"github.com/q12we34rt5/tabularpcn/internal/tree"
	"github.com/q12we34rt5/tabularpcn/internal/types"
)

// Re-exported core types, so callers outside this module can name them.
type (
	Tree     = tree.Tree
	Node     = tree.Node
	Property = tree.Property
	NodeType = tree.NodeType

	LexicalError = types.LexicalError
	GrammarError = types.GrammarError
)

const (
	TypeNone = tree.TypeNone
	TypeAND  = tree.TypeAND
	TypeOR   = tree.TypeOR
)

type loadOptions struct {
	progress func(pos, total int)
}

// Option configures a load operation.
type Option func(*loadOptions)

// WithProgress reports the byte position after each scanned token,
// together with the total input size.
func WithProgress(fn func(pos, total int)) Option {
	return func(o *loadOptions) { o.progress = fn }
}

// trackingAllocator creates nodes owned by the destination tree and
// stamps them with sequential ids in creation order.
type trackingAllocator struct {
	tree   *tree.Tree
	nextID uint64
}

func (a *trackingAllocator) Allocate() *tree.Node {
	n := a.tree.NewNode()
	n.ID = a.nextID
	a.nextID++
	return n
}

func (a *trackingAllocator) Deallocate(n *tree.Node) {
	a.tree.FreeNode(n)
}

// LoadString parses an in-memory SGF document and runs the proof-size
// annotation pass over the resulting tree.
func LoadString(s string, opts ...Option) (*Tree, error) {
	in := stream.NewStringInput(s)
	return load(in, in.Len(), opts...)
}

// LoadFile parses an SGF file and runs the proof-size annotation pass
// over the resulting tree.
func LoadFile(path string, opts ...Option) (*Tree, error) {
	in, err := stream.NewFileInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return load(in, in.Size(), opts...)
}

func load(in stream.Input, total int, opts ...Option) (*Tree, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	t := tree.New()
	var lexOpts []lexer.Option
	if o.progress != nil {
		lexOpts = append(lexOpts, lexer.WithProgress(total, o.progress))
	}
	p := parser.New(in, &trackingAllocator{tree: t}, lexOpts...)

	for {
		n, err := p.NextNode()
		if err != nil {
			return nil, err
		}
		if n == nil {
			break
		}
	}

	root := p.Root()
	if root == nil {
		return nil, &types.GrammarError{Msg: "empty game tree"}
	}
	t.SetRoot(root)
	if err := tree.Annotate(root); err != nil {
		return nil, err
	}
	return t, nil
}

// Annotate re-runs the proof-size pass over a subtree, for callers that
// rearranged an already loaded tree.
func Annotate(root *Node) error {
	return tree.Annotate(root)
}
