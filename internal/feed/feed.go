package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/decision-labs/contour/internal/logger"
	"github.com/decision-labs/contour/internal/posts"
)

const (
	DefaultAuthor = "Decision Labs"
	Language      = "en-us"
	// pubDateLayout is RFC 1123 pinned to GMT, as RSS readers expect.
	pubDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"
)

// Site describes the channel.
type Site struct {
	Title       string
	URL         string
	Description string
}

// Result reports what went into a feed.
type Result struct {
	Items   int
	Skipped int
}

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Atom    string   `xml:"xmlns:atom,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title         string   `xml:"title"`
	Link          string   `xml:"link"`
	Description   string   `xml:"description"`
	Language      string   `xml:"language"`
	LastBuildDate string   `xml:"lastBuildDate"`
	AtomLink      atomLink `xml:"atom:link"`
	Items         []item   `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type cdata struct {
	Text string `xml:",cdata"`
}

type guid struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type item struct {
	Title       cdata  `xml:"title"`
	Link        string `xml:"link"`
	GUID        guid   `xml:"guid"`
	Description cdata  `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Author      string `xml:"author"`
	Category    *cdata `xml:"category,omitempty"`
}

type dated struct {
	post posts.Post
	date time.Time
}

// Generate writes an RSS 2.0 document for ps, newest first. Records without a
// title or a parseable date are skipped and counted; they never fail the feed.
// The output depends only on site, ps and buildTime.
func Generate(w io.Writer, site Site, ps []posts.Post, buildTime time.Time) (Result, error) {
	log := logger.Named("feed")
	base := strings.TrimRight(site.URL, "/")

	var res Result
	valid := make([]posts.Post, 0, len(ps))
	for _, p := range ps {
		if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Date) == "" {
			res.Skipped++
			log.Warn("skipping post without title or date", zap.String("id", p.ID))
			continue
		}
		if _, err := posts.ParseDate(p.Date); err != nil {
			res.Skipped++
			log.Warn("skipping post with invalid date", zap.String("title", p.Title), zap.String("date", p.Date))
			continue
		}
		valid = append(valid, p)
	}
	posts.SortByDateDesc(valid)

	doc := rss{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: channel{
			Title:         site.Title,
			Link:          base + "/blog",
			Description:   site.Description,
			Language:      Language,
			LastBuildDate: buildTime.UTC().Format(pubDateLayout),
			AtomLink: atomLink{
				Href: base + "/rss.xml",
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: make([]item, 0, len(valid)),
		},
	}

	for _, p := range valid {
		d, _ := posts.ParseDate(p.Date)
		author := p.Author
		if author == "" {
			author = DefaultAuthor
		}
		it := item{
			Title:       cdata{p.Title},
			Link:        posts.Permalink(base, p),
			GUID:        guid{IsPermaLink: "false", Value: base + "/blog/" + p.ID},
			Description: cdata{p.Description},
			PubDate:     d.Format(pubDateLayout),
			Author:      author,
		}
		if p.Metadata != nil && p.Metadata.Category != "" {
			it.Category = &cdata{p.Metadata.Category}
		}
		doc.Channel.Items = append(doc.Channel.Items, it)
	}
	res.Items = len(doc.Channel.Items)

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return res, err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return res, fmt.Errorf("feed: encode: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return res, err
	}

	log.Info("feed generated", zap.Int("items", res.Items), zap.Int("skipped", res.Skipped))
	return res, nil
}

// WriteFile generates the feed into path, creating parent directories.
func WriteFile(path string, site Site, ps []posts.Post, buildTime time.Time) (Result, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Result{}, err
	}
	f, err := os.Create(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	res, err := Generate(f, site, ps, buildTime)
	if err != nil {
		return res, err
	}
	return res, f.Close()
}
