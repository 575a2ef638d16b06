package page

import (
	"errors"
	"testing"
)

func TestParseManifest(t *testing.T) {
	t.Parallel()

	t.Run("YAML document", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
base: https://example.com/gallery/
images:
  - src: a.jpg
    srcset: a-640.jpg 640w, a-1280.jpg 1280w
  - src: b.png
    currentSrc: https://example.com/gallery/b@2x.png
`)
		doc, err := ParseManifest(data, "file:///tmp/images.yaml")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.BaseURL != "https://example.com/gallery/" {
			t.Errorf("expected declared base, got %q", doc.BaseURL)
		}
		if doc.Len() != 2 {
			t.Fatalf("expected 2 images, got %d", doc.Len())
		}
		if doc.Images[0].SrcSet != "a-640.jpg 640w, a-1280.jpg 1280w" {
			t.Errorf("unexpected srcset %q", doc.Images[0].SrcSet)
		}
		if doc.Images[1].CurrentSource != "https://example.com/gallery/b@2x.png" {
			t.Errorf("unexpected currentSrc %q", doc.Images[1].CurrentSource)
		}
	})

	t.Run("JSON document", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"base":"https://example.com/","images":[{"src":"x.gif","srcset":"x2.gif 2x"}]}`)
		doc, err := ParseManifest(data, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Len() != 1 || doc.Images[0].Source != "x.gif" || doc.Images[0].SrcSet != "x2.gif 2x" {
			t.Errorf("unexpected images %#v", doc.Images)
		}
	})

	t.Run("bare list uses default base", func(t *testing.T) {
		t.Parallel()

		data := []byte("- src: one.png\n- src: two.png\n")
		doc, err := ParseManifest(data, "file:///tmp/list.yaml")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.BaseURL != "file:///tmp/list.yaml" {
			t.Errorf("expected default base, got %q", doc.BaseURL)
		}
		if doc.Len() != 2 {
			t.Errorf("expected 2 images, got %d", doc.Len())
		}
	})

	t.Run("empty manifest", func(t *testing.T) {
		t.Parallel()

		doc, err := ParseManifest(nil, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Images == nil || doc.Len() != 0 {
			t.Errorf("expected empty non-nil images, got %#v", doc.Images)
		}
	})

	t.Run("scalar is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseManifest([]byte("just a string"), "")
		if !errors.Is(err, ErrInvalidManifest) {
			t.Errorf("expected ErrInvalidManifest, got %v", err)
		}
	})

	t.Run("wrong field type is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseManifest([]byte("images: 42\n"), "")
		if !errors.Is(err, ErrInvalidManifest) {
			t.Errorf("expected ErrInvalidManifest, got %v", err)
		}
	})

	t.Run("malformed YAML", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseManifest([]byte("images: [unclosed"), ""); err == nil {
			t.Error("expected parse error")
		}
	})
}
