package renderer

import (
	"github.com/thestorefront/storefront-engine/pkg/richtext"
)

func renderParagraph(node *richtext.Node, position int) *Fragment {
	frag := &Fragment{
		Kind:  FragmentParagraph,
		Key:   positionKey(position),
		Align: normalizeAlignment(node.Align),
	}

	// Children render in document order; unknown kinds drop out without
	// shifting their siblings' content. An empty paragraph stays an empty
	// paragraph rather than being omitted.
	for i, child := range node.Children {
		if rendered := RenderNode(&child, i); rendered != nil {
			frag.Children = append(frag.Children, rendered)
		}
	}

	return frag
}

// normalizeAlignment maps editor alignment values onto the four-way display
// enum. Anything unrecognized falls back to left.
func normalizeAlignment(align string) string {
	switch align {
	case "center":
		return AlignCenter
	case "end", "right":
		return AlignRight
	case "justify":
		return AlignJustify
	default:
		return AlignLeft
	}
}
