// Package renderer converts structured description documents to display fragments
package renderer

import (
	"fmt"

	"github.com/thestorefront/storefront-engine/pkg/richtext"
)

// RenderNode renders a single content node to a display fragment. It is a
// pure function: the position hint feeds only the stable key of the output,
// never the rendering logic.
//
// The dispatch is a closed set with an explicit catch-all: a node kind this
// engine does not know renders as nothing, so documents written by a newer
// editor cannot break an older storefront.
func RenderNode(node *richtext.Node, position int) *Fragment {
	switch node.Kind {
	case richtext.KindText:
		return renderText(node, position)
	case richtext.KindLineBreak:
		return renderLineBreak(node, position)
	case richtext.KindParagraph:
		return renderParagraph(node, position)
	default:
		// Unknown kind: contributes nothing, by contract.
		return nil
	}
}

func positionKey(index int) string {
	return fmt.Sprintf("n%d", index)
}
