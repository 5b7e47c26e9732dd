package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/decision-labs/contour/internal/config"
)

func withFeedPaths(t *testing.T, posts, out string) {
	t.Helper()
	prevCfg, prevPosts, prevOut := cfg, postsPath, feedOut
	cfg, postsPath, feedOut = config.DefaultConfig(), posts, out
	t.Cleanup(func() { cfg, postsPath, feedOut = prevCfg, prevPosts, prevOut })
}

func TestRunFeedCorruptStoreDoesNotFail(t *testing.T) {
	dir := t.TempDir()
	postsFile := filepath.Join(dir, "posts.json")
	if err := os.WriteFile(postsFile, []byte(`[{"id": "a", "title": b`), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "public", "rss.xml")
	withFeedPaths(t, postsFile, out)

	if err := runFeed(&cobra.Command{}, nil); err != nil {
		t.Fatalf("feed step should log and continue, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("no feed expected from an unreadable store, stat err = %v", err)
	}
}

func TestRunFeedWritesFeed(t *testing.T) {
	dir := t.TempDir()
	postsFile := filepath.Join(dir, "posts.json")
	data := `[{"id": "a", "title": "Hello", "description": "d", "date": "2024-01-02", "featured": false}]`
	if err := os.WriteFile(postsFile, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "public", "rss.xml")
	withFeedPaths(t, postsFile, out)

	if err := runFeed(&cobra.Command{}, nil); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "<![CDATA[Hello]]>") {
		t.Errorf("item missing from feed:\n%s", raw)
	}
}
