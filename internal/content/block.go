package content

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the "type" tag of a content block.
type Kind string

const (
	KindParagraph Kind = "paragraph"
	KindImage     Kind = "image"
	KindImageRow  Kind = "image-row"
)

// Size is the display size of a standalone image.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// ResolveSize returns s if it is a known size and SizeLarge otherwise.
func ResolveSize(s Size) Size {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return s
	default:
		return SizeLarge
	}
}

// IsKnownSize reports whether s is one of the declared sizes. Empty counts as known (defaulted).
func IsKnownSize(s Size) bool {
	return s == "" || ResolveSize(s) == s
}

// Block is one unit of renderable content. The variants are Paragraph, Image,
// ImageRow and Unknown; the set is closed to this package.
type Block interface {
	Kind() Kind
	isBlock()
}

// Paragraph is rich text. Text may carry inline HTML or Markdown.
type Paragraph struct {
	Text string `yaml:"text"`
}

// Image is a standalone picture with an optional caption.
type Image struct {
	Src     string `yaml:"src"`
	Caption string `yaml:"caption,omitempty"`
	Size    Size   `yaml:"size,omitempty"`
}

// Figure is one cell of an ImageRow.
type Figure struct {
	Src     string `yaml:"src" json:"src"`
	Caption string `yaml:"caption,omitempty" json:"caption,omitempty"`
}

// ImageRow is an ordered row of figures shown as a grid.
type ImageRow struct {
	Images []Figure `yaml:"images"`
}

// Unknown holds a block whose type tag is not recognized. It renders as nothing.
type Unknown struct {
	Type string
}

func (Paragraph) Kind() Kind { return KindParagraph }
func (Image) Kind() Kind { return KindImage }
func (ImageRow) Kind() Kind { return KindImageRow }
func (u Unknown) Kind() Kind { return Kind(u.Type) }
func (Paragraph) isBlock() {}
func (Image) isBlock() {}
func (ImageRow) isBlock() {}
func (Unknown) isBlock() {}

// Blocks is an ordered sequence of content blocks.
type Blocks []Block

// Clone returns a copy that shares no backing arrays with bs.
func (bs Blocks) Clone() Blocks {
	if bs == nil {
		return nil
	}
	out := make(Blocks, len(bs))
	for i, b := range bs {
		if row, ok := b.(ImageRow); ok {
			b = ImageRow{Images: slices.Clone(row.Images)}
		}
		out[i] = b
	}
	return out
}

// UnmarshalYAML decodes a list of tagged blocks. Unrecognized tags become Unknown
// rather than failing, so new block kinds can be added to content first.
func (bs *Blocks) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: content must be a list of blocks", node.Line)
	}

	out := make(Blocks, 0, len(node.Content))
	for _, n := range node.Content {
		b, err := decodeBlock(n)
		if err != nil {
			return err
		}
		out = append(out, b)
	}
	*bs = out
	return nil
}

func decodeBlock(n *yaml.Node) (Block, error) {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := n.Decode(&head); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}

	switch Kind(head.Type) {
	case KindParagraph:
		var p Paragraph
		if err := n.Decode(&p); err != nil {
			return nil, fmt.Errorf("line %d: paragraph: %w", n.Line, err)
		}
		p.Text = strings.TrimSpace(p.Text)
		return p, nil
	case KindImage:
		var img Image
		if err := n.Decode(&img); err != nil {
			return nil, fmt.Errorf("line %d: image: %w", n.Line, err)
		}
		return img, nil
	case KindImageRow:
		var row ImageRow
		if err := n.Decode(&row); err != nil {
			return nil, fmt.Errorf("line %d: image-row: %w", n.Line, err)
		}
		return row, nil
	default:
		return Unknown{Type: head.Type}, nil
	}
}

// MarshalJSON encodes the paragraph with its type tag.
func (p Paragraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type Kind   `json:"type"`
		Text string `json:"text"`
	}{KindParagraph, p.Text})
}

// MarshalJSON encodes the image with its type tag and resolved size.
func (img Image) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    Kind   `json:"type"`
		Src     string `json:"src"`
		Caption string `json:"caption,omitempty"`
		Size    Size   `json:"size"`
	}{KindImage, img.Src, img.Caption, ResolveSize(img.Size)})
}

// MarshalJSON encodes the row with its type tag.
func (row ImageRow) MarshalJSON() ([]byte, error) {
	images := row.Images
	if images == nil {
		images = []Figure{}
	}
	return json.Marshal(struct {
		Type   Kind     `json:"type"`
		Images []Figure `json:"images"`
	}{KindImageRow, images})
}

// MarshalJSON keeps the unrecognized tag so consumers can see what was skipped.
func (u Unknown) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{u.Type})
}
