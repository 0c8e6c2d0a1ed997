package tree

import (
	"fmt"
	"strings"
)

// SGFNode renders the single ';'-statement for this node. Property
// order and values are reproduced verbatim; the C property additionally
// gets the computed statistics appended inside its value as one
// "key = value" line each, so downstream tools can read them back out
// of the comment.
func (n *Node) SGFNode() string {
	var b strings.Builder
	n.writeNode(&b)
	return b.String()
}

// SGF renders the whole subtree back into the source grammar, wrapped
// in one enclosing parenthesis pair.
func (n *Node) SGF() string {
	var b strings.Builder
	n.writeSGF(&b, true)
	return b.String()
}

func (n *Node) writeNode(b *strings.Builder) {
	b.WriteByte(';')
	for _, p := range n.Properties {
		b.WriteString(p.Tag)
		if p.Tag != "C" {
			for _, v := range p.Values {
				b.WriteByte('[')
				b.WriteString(v)
				b.WriteByte(']')
			}
			continue
		}
		b.WriteByte('[')
		b.WriteString(p.Values[0])
		fmt.Fprintf(b, "\nid = %d\ntype = %s\ntree_size = %d\nproof_tree_size = %d\nsolved = %t\nmatch_tt = %t\npruned_by_rzone = %t",
			n.ID, n.Type, n.TreeSize, n.ProofTreeSize, n.Solved, n.MatchTT, n.PrunedByRZone)
		b.WriteByte(']')
	}
}

// writeSGF walks the sibling chain. When two or more siblings follow,
// every branch gets its own parenthesis group; when exactly one
// follows, the current group closes right before it so linear chains
// stay compact.
func (n *Node) writeSGF(b *strings.Builder, root bool) {
	if root {
		b.WriteByte('(')
	}
	switch {
	case n.NextSibling == nil:
		n.writeNode(b)
		if n.FirstChild != nil {
			n.FirstChild.writeSGF(b, false)
		}
	case n.NextSibling.NextSibling != nil:
		b.WriteByte('(')
		n.writeNode(b)
		if n.FirstChild != nil {
			n.FirstChild.writeSGF(b, false)
		}
		b.WriteByte(')')
		n.NextSibling.writeSGF(b, false)
	default:
		b.WriteByte('(')
		n.writeNode(b)
		if n.FirstChild != nil {
			n.FirstChild.writeSGF(b, false)
		}
		b.WriteString(")(")
		n.NextSibling.writeSGF(b, false)
		b.WriteByte(')')
	}
	if root {
		b.WriteByte(')')
	}
}
