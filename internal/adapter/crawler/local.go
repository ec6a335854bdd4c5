package crawler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	adapterfs "github.com/deepanshu-yd/avalanche-dev-assistant/internal/adapter/fs"
)

var localPatterns = []string{"**/*.md", "**/*.markdown", "**/*.txt", "**/*.html", "**/*.htm"}

// IngestLocal copies a local documentation tree into the raw-docs
// directory, converting HTML files and cleaning everything for chunking.
// Returns the number of documents written.
func IngestLocal(inputDir, outDir string) (int, error) {
	walker := adapterfs.NewWalker(localPatterns, nil)
	files, err := walker.Walk(inputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to walk %s: %w", inputDir, err)
	}

	written := 0
	for _, rel := range files {
		raw, err := adapterfs.ReadFile(filepath.Join(inputDir, filepath.FromSlash(rel)))
		if err != nil {
			return written, err
		}

		content := raw
		targetRel := rel
		switch strings.ToLower(filepath.Ext(rel)) {
		case ".html", ".htm":
			content = HTMLToMarkdown(raw)
			targetRel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".md"
		case ".markdown":
			targetRel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".md"
		}

		path := filepath.Join(outDir, filepath.FromSlash(targetRel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return written, err
		}
		if err := os.WriteFile(path, []byte(CleanDocument(content)+"\n"), 0644); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
