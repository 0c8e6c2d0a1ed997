package tree

import (
	"fmt"
	"math"
)

// proofUnset is the min-accumulator sentinel for nodes where no solved
// child contributed a proof size.
const proofUnset = math.MaxUint64

// Annotate fills TreeSize and ProofTreeSize for every node of the
// subtree in a single post-order pass.
//
// TreeSize is the node count of the subtree. ProofTreeSize counts the
// nodes needed to certify a solved node: an AND node sums the proof
// sizes of its solved children, an OR node takes the minimum, and the
// node itself adds one. Unsolved nodes get zero.
//
// A solved node with no solved children normally indicates inconsistent
// input, except when the solved status came from outside the subtree
// (transposition match or a search-window cutoff); those nodes count
// only themselves. The pass fails on any other occurrence instead of
// propagating a wrong size.
func Annotate(root *Node) error {
	if root == nil {
		return fmt.Errorf("annotate: nil root")
	}
	return annotate(root)
}

func annotate(n *Node) error {
	if n.FirstChild == nil {
		n.TreeSize = 1
		if n.Solved {
			n.ProofTreeSize = 1
		} else {
			n.ProofTreeSize = 0
		}
		return nil
	}

	treeSize := uint64(1)
	proof := uint64(proofUnset)
	if n.Type == TypeAND {
		proof = 0
	}
	solvedChildren := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := annotate(c); err != nil {
			return err
		}
		treeSize += c.TreeSize
		if !c.Solved {
			continue
		}
		solvedChildren++
		switch n.Type {
		case TypeAND:
			proof += c.ProofTreeSize
		case TypeOR:
			if c.ProofTreeSize < proof {
				proof = c.ProofTreeSize
			}
		}
	}
	n.TreeSize = treeSize

	if !n.Solved {
		n.ProofTreeSize = 0
		return nil
	}
	// Untyped nodes never accumulate, so a solved untyped node also needs
	// external provenance.
	noProof := solvedChildren == 0 || (n.Type != TypeAND && proof == proofUnset)
	if noProof {
		if !n.MatchTT && !n.PrunedByRZone {
			return fmt.Errorf("node %d: solved but has no solved children and no transposition or cutoff provenance", n.ID)
		}
		n.ProofTreeSize = 1
		return nil
	}
	n.ProofTreeSize = proof + 1
	return nil
}
