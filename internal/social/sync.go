package social

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/decision-labs/contour/internal/logger"
	"github.com/decision-labs/contour/internal/posts"
)

// Options name the account to mirror.
type Options struct {
	Username string
	Author   string
}

// Sync fetches the account's recent posts and merges them into the store. On
// any failure the store is left as it was.
func Sync(ctx context.Context, c *Client, store *posts.Store, opts Options) (int, error) {
	log := logger.Named("social")

	tl, err := c.Fetch(ctx, opts.Username)
	if errors.Is(err, ErrNoToken) {
		log.Warn("bearer token not set, skipping social fetch")
		return 0, err
	}
	if err != nil {
		log.Error("social fetch failed", zap.String("username", opts.Username), zap.Error(err))
		return 0, err
	}

	existing, err := store.Load()
	if err != nil {
		log.Error("reading post store failed", zap.String("path", store.Path()), zap.Error(err))
		return 0, err
	}

	fetched := Normalize(opts.Username, opts.Author, tl)
	if err := store.Save(Merge(existing, fetched)); err != nil {
		log.Error("writing post store failed", zap.String("path", store.Path()), zap.Error(err))
		return 0, err
	}

	log.Info("social posts merged", zap.String("username", opts.Username), zap.Int("fetched", len(fetched)))
	return len(fetched), nil
}
