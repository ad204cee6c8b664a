package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/anoonan/folio/internal/content"
)

var plainParser = goldmark.DefaultParser()

// PlainText renders a block as lines of text for terminal display. Inline
// HTML tags are dropped and link text is kept.
func PlainText(blk content.Block) []string {
	switch blk := blk.(type) {
	case content.Paragraph:
		if s := Strip(blk.Text); s != "" {
			return []string{s}
		}
		return nil
	case content.Image:
		return []string{figureLine(blk.Src, blk.Caption)}
	case content.ImageRow:
		lines := make([]string, len(blk.Images))
		for i, f := range blk.Images {
			lines[i] = figureLine(f.Src, f.Caption)
		}
		return lines
	default:
		return nil
	}
}

// Strip reduces rich text to a single line of plain text.
func Strip(src string) string {
	source := []byte(src)
	doc := plainParser.Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(n.Value)
		case *ast.AutoLink:
			b.Write(n.Label(source))
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					b.Write(t.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}

func figureLine(src, caption string) string {
	if caption == "" {
		return fmt.Sprintf("[image] (%s)", src)
	}
	return fmt.Sprintf("[image: %s] (%s)", caption, src)
}
