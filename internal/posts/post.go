package posts

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultCategory is used for posts that carry no category.
const DefaultCategory = "Blog"

// Post is one entry of the site's posts.json.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Link        string    `json:"link,omitempty"`
	Slug        string    `json:"slug,omitempty"`
	Date        string    `json:"date"`
	Author      string    `json:"author,omitempty"`
	Featured    bool      `json:"featured"`
	Metadata    *Metadata `json:"metadata,omitempty"`
}

type Metadata struct {
	Category string `json:"category,omitempty"`
	ReadTime string `json:"readTime,omitempty"`
	Likes    int    `json:"likes"`
	Retweets int    `json:"retweets"`
}

// Category returns the post's category or DefaultCategory.
func (p Post) Category() string {
	if p.Metadata == nil || p.Metadata.Category == "" {
		return DefaultCategory
	}
	return p.Metadata.Category
}

func (p Post) Likes() int {
	if p.Metadata == nil {
		return 0
	}
	return p.Metadata.Likes
}

func (p Post) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidPost)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: %s has no title", ErrInvalidPost, p.ID)
	}
	return nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
}

// ParseDate accepts the date layouts found in posts.json and markdown front matter.
// Dates without a zone are UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// SortByDateDesc orders posts newest first. Posts with unparseable dates go last
// and keep their relative order.
func SortByDateDesc(ps []Post) {
	dates := make([]time.Time, len(ps))
	ok := make([]bool, len(ps))
	for i := range ps {
		d, err := ParseDate(ps[i].Date)
		dates[i], ok[i] = d, err == nil
	}
	idx := make([]int, len(ps))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if ok[ia] != ok[ib] {
			return ok[ia]
		}
		return dates[ia].After(dates[ib])
	})

	sorted := make([]Post, len(ps))
	for i, j := range idx {
		sorted[i] = ps[j]
	}
	copy(ps, sorted)
}

// Filter names accepted by Filter.
const (
	FilterAll      = "all"
	FilterSocial   = "social"
	FilterTalks    = "talks"
	FilterPosts    = "posts"
	FilterLaunches = "launches"
)

var filterCategories = map[string][]string{
	FilterSocial:   {"Twitter", "Social", "Social Media"},
	FilterTalks:    {"Talk", "Presentation", "Conference"},
	FilterPosts:    {"Blog", "Article", "Post"},
	FilterLaunches: {"Launch", "Release", "Announcement"},
}

// Filters lists the accepted filter names.
func Filters() []string {
	return []string{FilterAll, FilterSocial, FilterTalks, FilterPosts, FilterLaunches}
}

// Filter keeps posts whose category contains one of the filter's keywords,
// ignoring case. "all" and unknown filters behave differently: all returns every
// post, an unknown filter returns none.
func Filter(ps []Post, name string) []Post {
	if name == FilterAll || name == "" {
		return ps
	}
	keywords := filterCategories[name]
	out := make([]Post, 0, len(ps))
	for _, p := range ps {
		if matches(p.Category(), keywords) {
			out = append(out, p)
		}
	}
	return out
}

func matches(category string, keywords []string) bool {
	category = strings.ToLower(category)
	for _, k := range keywords {
		if strings.Contains(category, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// Metrics are the feed page's headline numbers.
type Metrics struct {
	Total  int
	Social int
	Likes  int
}

// ComputeMetrics counts posts, social posts and likes. Social posts are matched
// on their stored category only, so uncategorised posts never count.
func ComputeMetrics(ps []Post) Metrics {
	m := Metrics{Total: len(ps)}
	for _, p := range ps {
		if p.Metadata != nil && matches(p.Metadata.Category, filterCategories[FilterSocial]) {
			m.Social++
		}
		m.Likes += p.Likes()
	}
	return m
}

// MonthCount is the number of posts published in one calendar month.
type MonthCount struct {
	Month time.Time
	Count int
}

// MonthlyCounts buckets dated posts by month, oldest first, filling empty
// months in between with zero.
func MonthlyCounts(ps []Post) []MonthCount {
	counts := map[time.Time]int{}
	var first, last time.Time
	for _, p := range ps {
		d, err := ParseDate(p.Date)
		if err != nil {
			continue
		}
		m := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		counts[m]++
		if first.IsZero() || m.Before(first) {
			first = m
		}
		if m.After(last) {
			last = m
		}
	}
	if len(counts) == 0 {
		return nil
	}

	var out []MonthCount
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		out = append(out, MonthCount{Month: m, Count: counts[m]})
	}
	return out
}

// IsInternal reports whether the post lives on the site rather than linking out.
func IsInternal(p Post) bool {
	link := strings.TrimSpace(p.Link)
	return link == "" || !(strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://"))
}

// Permalink is the canonical URL of p: its own page for internal posts, the
// external link otherwise.
func Permalink(siteURL string, p Post) string {
	if !IsInternal(p) {
		return strings.TrimSpace(p.Link)
	}
	slug := p.Slug
	if slug == "" {
		slug = p.ID
	}
	return strings.TrimRight(siteURL, "/") + "/blog/" + strings.Trim(slug, "/")
}
