package posts

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// Store reads and writes a posts.json file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns the stored posts. A missing file is an empty list.
func (s *Store) Load() ([]Post, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Post{}, nil
		}
		return nil, err
	}

	var ps []Post
	if err := json.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("posts: decode %s: %w", s.path, err)
	}
	if ps == nil {
		ps = []Post{}
	}
	return ps, nil
}

// Save replaces the file with ps, indented two spaces. The write goes through a
// temporary file so readers never see a partial document.
func (s *Store) Save(ps []Post) error {
	if ps == nil {
		ps = []Post{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ps); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".posts-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// WriteCSV writes one row per post with its category and engagement counts.
func WriteCSV(w io.Writer, ps []Post) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "date", "category", "title", "likes", "retweets", "link"}); err != nil {
		return err
	}
	for _, p := range ps {
		retweets := 0
		if p.Metadata != nil {
			retweets = p.Metadata.Retweets
		}
		row := []string{
			p.ID,
			p.Date,
			p.Category(),
			p.Title,
			strconv.Itoa(p.Likes()),
			strconv.Itoa(retweets),
			p.Link,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
