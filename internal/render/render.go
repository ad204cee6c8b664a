// Package render turns content blocks into HTML fragments and plain text.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/anoonan/folio/internal/content"
)

const fragments = `
{{define "image"}}<figure class="block-image size-{{.Size}}"><img src="{{.Src}}" alt="{{.Alt}}" loading="lazy">{{with .Caption}}<figcaption>{{.}}</figcaption>{{end}}</figure>{{end}}
{{define "image-row"}}<div class="image-row">{{range .}}<figure class="image-cell"><img src="{{.Src}}" alt="{{.Alt}}" loading="lazy">{{with .Caption}}<figcaption>{{.}}</figcaption>{{end}}</figure>{{end}}</div>{{end}}
`

type figureData struct {
	Src     string
	Alt     string
	Caption string
	Size    content.Size
}

// Renderer converts blocks to HTML. Relative asset paths are prefixed with
// the asset base; absolute paths and URLs are left as they are.
type Renderer struct {
	md        goldmark.Markdown
	tmpl      *template.Template
	assetBase string
}

// New creates a Renderer that serves relative asset paths from assetBase
// (for example "/assets/" or "../assets/").
func New(assetBase string) *Renderer {
	if assetBase != "" && !strings.HasSuffix(assetBase, "/") {
		assetBase += "/"
	}
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			// Paragraphs are trusted content and may carry inline HTML.
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		tmpl:      template.Must(template.New("fragments").Parse(fragments)),
		assetBase: assetBase,
	}
}

// Asset resolves a content asset path to a URL.
func (r *Renderer) Asset(src string) string {
	if src == "" || strings.HasPrefix(src, "/") {
		return src
	}
	if u, err := url.Parse(src); err == nil && u.Scheme != "" {
		return src
	}
	return r.assetBase + src
}

// Blocks renders blocks in order. owner names the entity the blocks belong
// to and is used for image alt text when a caption is missing.
func (r *Renderer) Blocks(owner string, blocks content.Blocks) template.HTML {
	var b strings.Builder
	for i, blk := range blocks {
		b.WriteString(string(r.Block(owner, i, blk)))
	}
	return template.HTML(b.String())
}

// Block renders a single block. Unknown blocks render as nothing.
func (r *Renderer) Block(owner string, idx int, blk content.Block) template.HTML {
	switch blk := blk.(type) {
	case content.Paragraph:
		return r.Markdown(blk.Text)
	case content.Image:
		return r.exec("image", figureData{
			Src:     r.Asset(blk.Src),
			Alt:     altText(blk.Caption, owner, idx),
			Caption: blk.Caption,
			Size:    content.ResolveSize(blk.Size),
		})
	case content.ImageRow:
		cells := make([]figureData, len(blk.Images))
		for i, f := range blk.Images {
			cells[i] = figureData{
				Src:     r.Asset(f.Src),
				Alt:     altText(f.Caption, owner, i+1),
				Caption: f.Caption,
				Size:    content.SizeLarge,
			}
		}
		return r.exec("image-row", cells)
	default:
		return ""
	}
}

// Markdown renders rich text. Raw HTML is passed through.
func (r *Renderer) Markdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(text) + "</p>")
	}
	return template.HTML(buf.String())
}

func (r *Renderer) exec(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return ""
	}
	return template.HTML(buf.String())
}

func altText(caption, owner string, n int) string {
	if caption != "" {
		return caption
	}
	if owner == "" {
		return fmt.Sprintf("Image %d", n)
	}
	return fmt.Sprintf("%s image %d", owner, n)
}
