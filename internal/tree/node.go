package tree

import (
	"fmt"
	"strings"
)

// NodeType is the AND/OR polarity of a game-tree node, inferred from the
// move property it carries.
type NodeType int8

const (
	TypeNone NodeType = iota
	TypeAND
	TypeOR
)

func (t NodeType) String() string {
	switch t {
	case TypeAND:
		return "AND"
	case TypeOR:
		return "OR"
	}
	return "NONE"
}

// Property is one tag with its ordered values. Insertion order of
// properties is preserved because it is meaningful on re-serialization.
type Property struct {
	Tag    string
	Values []string
}

// Node is one ';'-prefixed SGF statement. Nodes link intrusively:
// FirstChild heads a singly linked sibling list through NextSibling, and
// Parent points back without owning. The Tree container owns the nodes.
type Node struct {
	Parent      *Node
	FirstChild  *Node
	NextSibling *Node
	NumChildren int

	ID   uint64
	Type NodeType

	// Derived by Annotate; zero until the pass has run.
	TreeSize      uint64
	ProofTreeSize uint64

	Solved bool
	// MatchTT records that the solved status came from a transposition
	// match rather than this node's own subtree.
	MatchTT bool
	// PrunedByRZone records that the node was solved through a bounded
	// search cutoff.
	PrunedByRZone bool

	Properties []Property
}

// AddChild detaches node from any current parent and appends it after
// the existing children, so sibling order is document order.
func (n *Node) AddChild(node *Node) {
	node.Detach()
	if n.FirstChild == nil {
		n.FirstChild = node
	} else {
		last := n.FirstChild
		for last.NextSibling != nil {
			last = last.NextSibling
		}
		last.NextSibling = node
	}
	node.Parent = n
	n.NumChildren++
}

// Detach removes the node from its parent's child list and returns it.
// The node's own subtree moves with it. Detaching an unattached node is
// a no-op.
func (n *Node) Detach() *Node {
	if n.Parent == nil {
		return n
	}
	if n.Parent.FirstChild == n {
		n.Parent.FirstChild = n.NextSibling
	} else {
		prev := n.Parent.FirstChild
		for prev.NextSibling != n {
			prev = prev.NextSibling
		}
		prev.NextSibling = n.NextSibling
	}
	n.Parent.NumChildren--
	n.Parent = nil
	n.NextSibling = nil
	return n
}

// AddProperty appends a property, interpreting the tags the solver
// metadata pipeline cares about. B and W carry the move and fix the node
// polarity; C may embed solver status lines. Everything else is stored
// verbatim.
func (n *Node) AddProperty(tag string, values []string) error {
	switch tag {
	case "B":
		if len(values) != 1 {
			return fmt.Errorf("property B expects exactly one value, got %d", len(values))
		}
		n.Type = TypeAND
	case "W":
		if len(values) != 1 {
			return fmt.Errorf("property W expects exactly one value, got %d", len(values))
		}
		n.Type = TypeOR
	case "C":
		if len(values) != 1 {
			return fmt.Errorf("property C expects exactly one value, got %d", len(values))
		}
		comment := values[0]
		if v, ok := commentField(comment, "solver_status: "); ok && (v == "WIN" || v == "LOSS") {
			n.Solved = true
		}
		if v, ok := commentField(comment, "match_tt = "); ok && v == "true" {
			if !n.Solved {
				return fmt.Errorf("match_tt set on unsolved node %d", n.ID)
			}
			n.MatchTT = true
		}
		if v, ok := commentField(comment, "equal_loss = "); ok && v != "-1" {
			if !n.Solved {
				return fmt.Errorf("equal_loss cutoff recorded on unsolved node %d", n.ID)
			}
			n.PrunedByRZone = true
		}
	}
	n.Properties = append(n.Properties, Property{Tag: tag, Values: values})
	return nil
}

// Property returns the values of the first property with the given tag.
func (n *Node) Property(tag string) ([]string, bool) {
	for _, p := range n.Properties {
		if p.Tag == tag {
			return p.Values, true
		}
	}
	return nil, false
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(id=%d, type=%s, tree_size=%d, proof_tree_size=%d, solved=%t)",
		n.ID, n.Type, n.TreeSize, n.ProofTreeSize, n.Solved)
}

// commentField extracts the value following the first occurrence of key
// inside comment, up to the end of the line. A trailing carriage return
// is trimmed.
func commentField(comment, key string) (string, bool) {
	pos := strings.Index(comment, key)
	if pos < 0 {
		return "", false
	}
	pos += len(key)
	end := strings.IndexByte(comment[pos:], '\n')
	if end < 0 {
		end = len(comment)
	} else {
		end += pos
	}
	if end > pos && comment[end-1] == '\r' {
		end--
	}
	return comment[pos:end], true
}
