package renderer

import (
	"github.com/thestorefront/storefront-engine/pkg/richtext"
)

func renderText(node *richtext.Node, position int) *Fragment {
	// Bit 0 of the format mask means emphasized. Every other bit is reserved
	// for future editor versions and is ignored here, not rejected.
	bold := node.Format&richtext.FormatBold != 0

	return &Fragment{
		Kind: FragmentText,
		Key:  positionKey(position),
		Text: node.Text,
		Bold: bold,
	}
}

func renderLineBreak(_ *richtext.Node, position int) *Fragment {
	return &Fragment{
		Kind: FragmentBreak,
		Key:  positionKey(position),
	}
}
