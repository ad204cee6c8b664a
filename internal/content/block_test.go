package content

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const mixedBlocks = `
- type: paragraph
  text: "  Hello <a href=\"https://example.com\">world</a>  "
- type: image
  src: img/a.png
  caption: A
  size: small
- type: image-row
  images:
    - src: img/b.png
      caption: B
    - src: img/c.png
- type: video
  src: clip.mp4
`

func TestBlocks_UnmarshalYAML(t *testing.T) {
	var bs Blocks
	if err := yaml.Unmarshal([]byte(mixedBlocks), &bs); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(bs) != 4 {
		t.Fatalf("len = %d, want 4", len(bs))
	}

	p, ok := bs[0].(Paragraph)
	if !ok {
		t.Fatalf("bs[0] = %T, want Paragraph", bs[0])
	}
	if p.Text != `Hello <a href="https://example.com">world</a>` {
		t.Errorf("paragraph text = %q", p.Text)
	}

	img, ok := bs[1].(Image)
	if !ok {
		t.Fatalf("bs[1] = %T, want Image", bs[1])
	}
	if img.Src != "img/a.png" || img.Caption != "A" || img.Size != SizeSmall {
		t.Errorf("image = %+v", img)
	}

	row, ok := bs[2].(ImageRow)
	if !ok {
		t.Fatalf("bs[2] = %T, want ImageRow", bs[2])
	}
	if len(row.Images) != 2 || row.Images[1].Src != "img/c.png" || row.Images[1].Caption != "" {
		t.Errorf("row = %+v", row)
	}

	u, ok := bs[3].(Unknown)
	if !ok {
		t.Fatalf("bs[3] = %T, want Unknown", bs[3])
	}
	if u.Type != "video" || u.Kind() != Kind("video") {
		t.Errorf("unknown = %+v", u)
	}
}

func TestBlocks_UnmarshalYAML_NotASequence(t *testing.T) {
	var bs Blocks
	err := yaml.Unmarshal([]byte("type: paragraph\ntext: hi\n"), &bs)
	if err == nil {
		t.Fatal("expected error for mapping, got nil")
	}
	if !strings.Contains(err.Error(), "list of blocks") {
		t.Errorf("error = %q", err)
	}
}

func TestResolveSize(t *testing.T) {
	tests := []struct {
		in   Size
		want Size
	}{
		{"", SizeLarge},
		{SizeSmall, SizeSmall},
		{SizeMedium, SizeMedium},
		{SizeLarge, SizeLarge},
		{"huge", SizeLarge},
		{"Small", SizeLarge},
	}
	for _, tt := range tests {
		if got := ResolveSize(tt.in); got != tt.want {
			t.Errorf("ResolveSize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsKnownSize(t *testing.T) {
	if !IsKnownSize("") {
		t.Error("empty size should count as known")
	}
	if !IsKnownSize(SizeMedium) {
		t.Error("medium should be known")
	}
	if IsKnownSize("huge") {
		t.Error("huge should not be known")
	}
}

func TestBlock_MarshalJSON(t *testing.T) {
	bs := Blocks{
		Paragraph{Text: "hi"},
		Image{Src: "a.png"},
		ImageRow{},
		Unknown{Type: "video"},
	}
	data, err := json.Marshal(bs)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `[{"type":"paragraph","text":"hi"},{"type":"image","src":"a.png","size":"large"},{"type":"image-row","images":[]},{"type":"video"}]`
	if string(data) != want {
		t.Errorf("json = %s\nwant %s", data, want)
	}
}
