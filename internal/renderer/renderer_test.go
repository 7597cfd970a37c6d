package renderer

import (
	"strings"
	"testing"

	"github.com/thestorefront/storefront-engine/pkg/richtext"
)

func TestRenderNode_TextBold(t *testing.T) {
	tests := []struct {
		name     string
		format   int
		wantBold bool
	}{
		{"no mask", 0, false},
		{"bold bit", richtext.FormatBold, true},
		{"bold plus reserved bits", richtext.FormatBold | 0x0E, true},
		{"reserved bits only", 0x0E, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &richtext.Node{Kind: richtext.KindText, Text: "hello", Format: tt.format}
			frag := RenderNode(node, 0)
			if frag == nil {
				t.Fatal("Expected fragment, got nil")
			}
			if frag.Bold != tt.wantBold {
				t.Errorf("Bold = %v, want %v", frag.Bold, tt.wantBold)
			}
			if frag.Text != "hello" {
				t.Errorf("Expected identical literal content, got '%s'", frag.Text)
			}
		})
	}
}

func TestRenderNode_MissingText(t *testing.T) {
	node := &richtext.Node{Kind: richtext.KindText}
	frag := RenderNode(node, 0)
	if frag == nil {
		t.Fatal("Expected fragment, got nil")
	}
	if frag.Text != "" {
		t.Errorf("Expected empty string for missing text, got '%s'", frag.Text)
	}
}

func TestRenderNode_LineBreak(t *testing.T) {
	frag := RenderNode(&richtext.Node{Kind: richtext.KindLineBreak}, 2)
	if frag == nil {
		t.Fatal("Expected fragment, got nil")
	}
	if frag.Kind != FragmentBreak {
		t.Errorf("Expected break fragment, got %s", frag.Kind)
	}
	if frag.Text != "" {
		t.Errorf("Break must contribute no text, got '%s'", frag.Text)
	}
}

func TestRenderNode_UnknownKind(t *testing.T) {
	frag := RenderNode(&richtext.Node{Kind: "hologram", Text: "future"}, 0)
	if frag != nil {
		t.Errorf("Expected unknown kind to render nothing, got %+v", frag)
	}
}

func TestRenderNode_ParagraphAlignment(t *testing.T) {
	tests := []struct {
		align string
		want  string
	}{
		{"", AlignLeft},
		{"start", AlignLeft},
		{"left", AlignLeft},
		{"center", AlignCenter},
		{"end", AlignRight},
		{"right", AlignRight},
		{"justify", AlignJustify},
		{"diagonal", AlignLeft},
	}

	for _, tt := range tests {
		t.Run("align "+tt.align, func(t *testing.T) {
			node := &richtext.Node{Kind: richtext.KindParagraph, Align: tt.align}
			frag := RenderNode(node, 0)
			if frag.Align != tt.want {
				t.Errorf("Align = %s, want %s", frag.Align, tt.want)
			}
		})
	}
}

func TestRenderNode_EmptyParagraphKept(t *testing.T) {
	node := &richtext.Node{Kind: richtext.KindParagraph}
	frag := RenderNode(node, 0)
	if frag == nil {
		t.Fatal("Empty paragraph must render as an empty paragraph, not be omitted")
	}
	if len(frag.Children) != 0 {
		t.Errorf("Expected no children, got %d", len(frag.Children))
	}
}

func TestRenderNode_UnknownChildIsolation(t *testing.T) {
	with := &richtext.Node{Kind: richtext.KindParagraph, Children: []richtext.Node{
		{Kind: richtext.KindText, Text: "a"},
		{Kind: "hologram"},
		{Kind: richtext.KindText, Text: "b"},
	}}
	without := &richtext.Node{Kind: richtext.KindParagraph, Children: []richtext.Node{
		{Kind: richtext.KindText, Text: "a"},
		{Kind: richtext.KindText, Text: "b"},
	}}

	if got, want := RenderNode(with, 0).PlainText(), RenderNode(without, 0).PlainText(); got != want {
		t.Errorf("Unknown node altered sibling output: got %q, want %q", got, want)
	}
}

func TestDocumentRenderer_NoPayload(t *testing.T) {
	r := NewDocumentRenderer(nil)

	for _, payload := range []any{nil, "", []byte{}} {
		frag := r.Render(payload)
		if frag.PlainText() != NoContentText {
			t.Errorf("Render(%v) = %q, want no-content fallback", payload, frag.PlainText())
		}
	}
}

func TestDocumentRenderer_EmptyChildren(t *testing.T) {
	r := NewDocumentRenderer(nil)

	frag := r.Render(`{"root": {"children": []}}`)
	if frag.PlainText() != NoContentText {
		t.Errorf("Expected no-content fallback for empty children, got %q", frag.PlainText())
	}
}

func TestDocumentRenderer_MalformedPayload(t *testing.T) {
	r := NewDocumentRenderer(nil)

	frag := r.Render(`{not json`)
	if frag.PlainText() != RenderErrorText {
		t.Errorf("Expected error fallback, got %q", frag.PlainText())
	}
}

func TestDocumentRenderer_Deterministic(t *testing.T) {
	r := NewDocumentRenderer(nil)
	payload := `{"root": {"children": [
		{"type": "paragraph", "alignment": "center", "children": [
			{"type": "text", "text": "Soft & cozy", "format": 1},
			{"type": "linebreak"},
			{"type": "text", "text": "100% cotton"}
		]},
		{"type": "blockquote", "text": "ignored"},
		{"type": "paragraph", "children": []}
	]}}`

	first := r.Render(payload).HTML()
	second := r.Render(payload).HTML()
	if first != second {
		t.Errorf("Rendering is not deterministic:\n%s\n%s", first, second)
	}

	if !strings.Contains(first, `style="text-align:center"`) {
		t.Errorf("Expected centered-alignment marker in %s", first)
	}
	if !strings.Contains(first, `<span style="font-weight:bold">Soft &amp; cozy</span>`) {
		t.Errorf("Expected escaped bold span in %s", first)
	}
	if !strings.Contains(first, `<br>`) {
		t.Errorf("Expected line break marker in %s", first)
	}
	if strings.Contains(first, "ignored") {
		t.Errorf("Unknown node leaked into output: %s", first)
	}
	// The trailing empty paragraph must still be present.
	if !strings.Contains(first, `<p data-key="n2"></p>`) {
		t.Errorf("Expected empty paragraph kept in %s", first)
	}
}

func TestDocumentRenderer_PreParsedDocument(t *testing.T) {
	r := NewDocumentRenderer(nil)
	doc := &richtext.Document{Root: richtext.Root{Children: []richtext.Node{
		{Kind: richtext.KindParagraph, Children: []richtext.Node{
			{Kind: richtext.KindText, Text: "direct"},
		}},
	}}}

	frag := r.Render(doc)
	if frag.PlainText() != "direct" {
		t.Errorf("Expected 'direct', got %q", frag.PlainText())
	}
}
