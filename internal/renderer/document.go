package renderer

import (
	"log/slog"

	"github.com/thestorefront/storefront-engine/pkg/richtext"
)

// Fallback copy shown in place of a description. Missing content and empty
// content are deliberately indistinguishable to the shopper.
const (
	NoContentText   = "No description available"
	RenderErrorText = "Error displaying product description"
)

// DocumentRenderer folds a whole description payload into one display
// fragment and owns the fallback policy. Rendering never returns an error:
// every failure degrades to a static fragment and a log line.
type DocumentRenderer struct {
	log *slog.Logger
}

// NewDocumentRenderer creates a renderer reporting decode failures to log.
// A nil logger disables diagnostics.
func NewDocumentRenderer(log *slog.Logger) *DocumentRenderer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &DocumentRenderer{log: log}
}

// Render converts a raw description payload (serialized string, raw bytes,
// pre-parsed document, or nil) into a display fragment.
func (r *DocumentRenderer) Render(payload any) *Fragment {
	doc, err := richtext.Decode(payload)
	if err != nil {
		r.log.Error("failed to decode product description", "error", err)
		return fallback(RenderErrorText)
	}

	if doc.IsEmpty() {
		return fallback(NoContentText)
	}

	container := &Fragment{Kind: FragmentContainer}
	for i, node := range doc.Root.Children {
		if rendered := RenderNode(&node, i); rendered != nil {
			container.Children = append(container.Children, rendered)
		}
	}

	return container
}

func fallback(text string) *Fragment {
	return &Fragment{
		Kind: FragmentParagraph,
		Children: []*Fragment{
			{Kind: FragmentText, Text: text},
		},
	}
}
