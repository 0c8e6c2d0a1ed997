package tree

// Tree owns a set of nodes. Every node is tracked from creation, so the
// whole graph can be released as a unit regardless of how the intrusive
// links were rearranged in between. Trees are handled by pointer;
// ownership moves with the pointer.
type Tree struct {
	nodes map[*Node]struct{}
	root  *Node
}

func New() *Tree {
	return &Tree{nodes: make(map[*Node]struct{})}
}

// NewNode allocates a node owned by this tree.
func (t *Tree) NewNode() *Node {
	n := &Node{}
	t.nodes[n] = struct{}{}
	return n
}

// FreeNode releases a node if this tree owns it; releasing a node twice
// or releasing a foreign node is a no-op.
func (t *Tree) FreeNode(n *Node) {
	delete(t.nodes, n)
}

// Contains reports whether this tree owns n.
func (t *Tree) Contains(n *Node) bool {
	_, ok := t.nodes[n]
	return ok
}

// Len returns the number of live nodes owned by the tree.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) Root() *Node     { return t.root }
func (t *Tree) SetRoot(n *Node) { t.root = n }

// Reset releases every node and clears the root.
func (t *Tree) Reset() {
	t.nodes = make(map[*Node]struct{})
	t.root = nil
}
