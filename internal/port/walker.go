package port

import "context"

// FileWalker lists document files under a root directory.
type FileWalker interface {
	Walk(root string) ([]string, error)
}

// Fetcher retrieves the body of one remote page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
