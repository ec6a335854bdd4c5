package crawler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/domain"
)

var (
	bucketSeen     = []byte("seen")
	bucketManifest = []byte("manifest")
)

// State persists crawl progress in a bolt database: the set of URLs
// already visited and the manifest of saved pages. Re-running a crawl
// resumes instead of refetching everything.
type State struct {
	db *bbolt.DB
}

func OpenState(path string) (*State, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create crawl state directory: %w", err)
	}

	db, err := bbolt.Open(path, 0644, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open crawl state: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketSeen, bucketManifest} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create crawl state buckets: %w", err)
	}

	return &State{db: db}, nil
}

// MarkSeen records a URL, returning true if this is the first visit.
func (s *State) MarkSeen(url string) (bool, error) {
	first := false
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSeen)
		if b.Get([]byte(url)) != nil {
			return nil
		}
		first = true
		return b.Put([]byte(url), []byte{1})
	})
	return first, err
}

// AddPage appends a fetched page to the manifest.
func (s *State) AddPage(page domain.CrawledPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketManifest).Put([]byte(page.URL), data)
	})
}

// Pages returns the crawl manifest.
func (s *State) Pages() ([]domain.CrawledPage, error) {
	var pages []domain.CrawledPage
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketManifest).ForEach(func(_, v []byte) error {
			var page domain.CrawledPage
			if err := json.Unmarshal(v, &page); err != nil {
				return nil // skip corrupted entries
			}
			pages = append(pages, page)
			return nil
		})
	})
	return pages, err
}

func (s *State) Close() error {
	return s.db.Close()
}
