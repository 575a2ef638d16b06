package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", ".", "..", "a/b.png", `a\b.png`, "../x.png"} {
		if err := validateName(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("validateName(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
	if err := validateName("image_1.png"); err != nil {
		t.Errorf("expected image_1.png to be valid, got %v", err)
	}
}

func TestDirSaver(t *testing.T) {
	t.Parallel()

	t.Run("creates the directory and writes the file", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "out")
		s, err := NewDirSaver(dir)
		if err != nil {
			t.Fatalf("NewDirSaver failed: %v", err)
		}
		if s.Dir() != dir {
			t.Errorf("expected dir %q, got %q", dir, s.Dir())
		}

		if err := s.Save(context.Background(), "image_1.png", []byte("png")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := os.ReadFile(filepath.Join(dir, "image_1.png"))
		if err != nil {
			t.Fatalf("failed to read saved file: %v", err)
		}
		if string(got) != "png" {
			t.Errorf("unexpected content %q", got)
		}
	})

	t.Run("replaces an existing file and leaves no temporary files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := NewDirSaver(dir)
		if err != nil {
			t.Fatalf("NewDirSaver failed: %v", err)
		}

		ctx := context.Background()
		if err := s.Save(ctx, "image_1.jpg", []byte("old")); err != nil {
			t.Fatalf("first save failed: %v", err)
		}
		if err := s.Save(ctx, "image_1.jpg", []byte("new")); err != nil {
			t.Fatalf("second save failed: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected exactly one file, got %d", len(entries))
		}
		got, _ := os.ReadFile(filepath.Join(dir, "image_1.jpg")) //nolint:errcheck // Checked via content
		if string(got) != "new" {
			t.Errorf("expected replaced content, got %q", got)
		}
	})

	t.Run("rejects names with separators", func(t *testing.T) {
		t.Parallel()

		s, err := NewDirSaver(t.TempDir())
		if err != nil {
			t.Fatalf("NewDirSaver failed: %v", err)
		}
		if err := s.Save(context.Background(), "../escape.png", nil); !errors.Is(err, ErrInvalidName) {
			t.Errorf("expected ErrInvalidName, got %v", err)
		}
	})

	t.Run("cancelled context does not write", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := NewDirSaver(dir)
		if err != nil {
			t.Fatalf("NewDirSaver failed: %v", err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := s.Save(ctx, "image_1.png", []byte("x")); err == nil {
			t.Error("expected error for cancelled context")
		}
		if _, err := os.Stat(filepath.Join(dir, "image_1.png")); !os.IsNotExist(err) {
			t.Error("expected no file to be written")
		}
	})
}

func TestArchiveSaver(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out", "images.sqlar")

	a, err := OpenArchive(ctx, path)
	if err != nil {
		t.Fatalf("OpenArchive failed: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	if a.Path() != path {
		t.Errorf("expected path %q, got %q", path, a.Path())
	}

	if err := a.Save(ctx, "image_2.png", []byte("second")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := a.Save(ctx, "image_1.jpg", []byte("first")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := a.Save(ctx, "image_1.jpg", []byte("replaced")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	names, err := a.Names(ctx)
	if err != nil {
		t.Fatalf("Names failed: %v", err)
	}
	want := []string{"image_1.jpg", "image_2.png"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], names[i])
		}
	}

	data, err := a.Read(ctx, "image_1.jpg")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "replaced" {
		t.Errorf("expected replaced content, got %q", data)
	}

	if err := a.Save(ctx, "", []byte("x")); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestSaverFunc(t *testing.T) {
	t.Parallel()

	var gotName string
	var s Saver = SaverFunc(func(_ context.Context, name string, _ []byte) error {
		gotName = name
		return nil
	})
	if err := s.Save(context.Background(), "image_1.png", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotName != "image_1.png" {
		t.Errorf("expected image_1.png, got %q", gotName)
	}
}
