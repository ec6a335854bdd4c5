package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkMatchesDocPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "guide.md", "# Guide")
	writeFile(t, root, "notes.txt", "notes")
	writeFile(t, root, "sub/deep.md", "# Deep")
	writeFile(t, root, "image.png", "binary")

	files, err := NewWalker(nil, nil).Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 doc files, got %d: %v", len(files), files)
	}
	for _, f := range files {
		if filepath.IsAbs(f) {
			t.Errorf("expected relative path, got %s", f)
		}
	}
}

func TestWalkExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.md", "# Keep")
	writeFile(t, root, "skip/hidden.md", "# Hidden")

	files, err := NewWalker(nil, []string{"skip/**"}).Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != "keep.md" {
		t.Fatalf("expected only keep.md, got %v", files)
	}
}
