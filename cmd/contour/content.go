package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decision-labs/contour/internal/feed"
	"github.com/decision-labs/contour/internal/logger"
	"github.com/decision-labs/contour/internal/posts"
	"github.com/decision-labs/contour/internal/social"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#86b7ff"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func postStore() *posts.Store {
	path := cfg.Posts.Path
	if postsPath != "" {
		path = postsPath
	}
	return posts.NewStore(path)
}

func runFeed(cmd *cobra.Command, args []string) error {
	// The feed is a build step; no failure here may break the build.
	store := postStore()
	ps, err := store.Load()
	if err != nil {
		logger.Error("reading post store failed", zap.String("path", store.Path()), zap.Error(err))
		return nil
	}

	out := cfg.Site.FeedPath
	if feedOut != "" {
		out = feedOut
	}
	site := feed.Site{Title: cfg.Site.Title, URL: cfg.Site.URL, Description: cfg.Site.Description}

	res, err := feed.WriteFile(out, site, ps, time.Now())
	if err != nil {
		logger.Error("feed generation failed", zap.String("path", out), zap.Error(err))
		return nil
	}
	fmt.Printf("feed written to %s: %d items, %d skipped\n", out, res.Items, res.Skipped)
	return nil
}

func runFetchSocial(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := social.NewClient(nil, cfg.Social.APIBase, cfg.Token(), cfg.Social.MaxResults)
	n, err := social.Sync(ctx, client, postStore(), social.Options{
		Username: cfg.Social.Username,
		Author:   cfg.Social.Author,
	})
	switch {
	case errors.Is(err, social.ErrNoToken):
		fmt.Printf("%s not set, skipping social fetch\n", cfg.Social.TokenEnv)
		return nil
	case err != nil:
		// Logged by Sync. The post store is untouched.
		return nil
	}
	fmt.Printf("fetched %d posts from @%s\n", n, cfg.Social.Username)
	return nil
}

func runPosts(cmd *cobra.Command, args []string) error {
	if !slices.Contains(posts.Filters(), filterName) {
		return fmt.Errorf("unknown filter %q (have %v)", filterName, posts.Filters())
	}
	ps, err := postStore().Load()
	if err != nil {
		return err
	}
	posts.SortByDateDesc(ps)

	if csvOut {
		return posts.WriteCSV(os.Stdout, posts.Filter(ps, filterName))
	}

	if showStats {
		m := posts.ComputeMetrics(ps)
		fmt.Println(headerStyle.Render("METRICS"))
		fmt.Printf("  total posts   %d\n  social posts  %d\n  total likes   %d\n\n", m.Total, m.Social, m.Likes)

		months := posts.MonthlyCounts(ps)
		if len(months) > 1 {
			data := make([]float64, len(months))
			for i, mc := range months {
				data[i] = float64(mc.Count)
			}
			fmt.Println(asciigraph.Plot(data,
				asciigraph.Height(8),
				asciigraph.Caption(fmt.Sprintf("posts per month, %s to %s",
					months[0].Month.Format("Jan 2006"), months[len(months)-1].Month.Format("Jan 2006"))),
			))
			fmt.Println()
		}
	}

	filtered := posts.Filter(ps, filterName)
	fmt.Println(headerStyle.Render(fmt.Sprintf("POSTS (%s)", filterName)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tCATEGORY\tTITLE\tLINK")
	for _, p := range filtered {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Date, p.Category(), p.Title, posts.Permalink(cfg.Site.URL, p))
	}
	w.Flush()
	fmt.Println(mutedStyle.Render(fmt.Sprintf("%d of %d posts", len(filtered), len(ps))))
	return nil
}
