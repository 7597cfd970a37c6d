package richtext

import (
	"fmt"
)

// maxDepth bounds recursion over editor output. Real documents are a handful
// of levels deep; anything beyond this is treated as a malformed payload.
const maxDepth = 64

// Validate validates a Document structure.
//
// The format is deliberately permissive: unknown node kinds, reserved format
// bits and empty children are all valid, because newer editor versions must
// keep decoding on older engines. Only structurally unusable trees fail.
func Validate(d *Document) error {
	for i, node := range d.Root.Children {
		if err := validateNode(&node, 1); err != nil {
			return fmt.Errorf("node[%d]: %w", i, err)
		}
	}
	return nil
}

func validateNode(n *Node, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("nesting exceeds %d levels", maxDepth)
	}

	if n.Format < 0 {
		return fmt.Errorf("negative format mask %d", n.Format)
	}

	for i, child := range n.Children {
		if err := validateNode(&child, depth+1); err != nil {
			return fmt.Errorf("child[%d]: %w", i, err)
		}
	}

	return nil
}
