package social

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/decision-labs/contour/internal/posts"
)

const (
	IDPrefix         = "twitter-"
	Category         = "Twitter"
	ReadTime         = "1 min read"
	PlaceholderImage = "https://via.placeholder.com/800x400"

	maxTitle       = 60
	maxDescription = 200
	featuredCount  = 2
)

var (
	urlPattern     = regexp.MustCompile(`https?://\S+`)
	mentionPattern = regexp.MustCompile(`@\w+`)
	sentenceEnd    = regexp.MustCompile(`[.!?]`)
)

// CleanText strips links and mentions and collapses whitespace.
func CleanText(s string) string {
	s = urlPattern.ReplaceAllString(s, "")
	s = mentionPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// Title is the first sentence of text, shortened to 60 characters with an
// ellipsis. Empty text gives "Tweet n".
func Title(text string, n int) string {
	first := strings.TrimSpace(sentenceEnd.Split(text, 2)[0])
	if first == "" {
		return fmt.Sprintf("Tweet %d", n)
	}
	r := []rune(first)
	if len(r) > maxTitle {
		return strings.TrimSpace(string(r[:maxTitle-3])) + "..."
	}
	return first
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// imageFor picks the first photo, then the first video preview, then the placeholder.
func imageFor(t Tweet, media map[string]Media) string {
	if t.Attachments == nil {
		return PlaceholderImage
	}
	var attached []Media
	for _, k := range t.Attachments.MediaKeys {
		if m, ok := media[k]; ok {
			attached = append(attached, m)
		}
	}
	for _, m := range attached {
		if m.Type == "photo" && m.URL != "" {
			return m.URL
		}
	}
	for _, m := range attached {
		if m.PreviewImageURL != "" {
			return m.PreviewImageURL
		}
	}
	return PlaceholderImage
}

// Normalize converts a timeline into post records. The first two are featured.
func Normalize(username, author string, tl *Timeline) []posts.Post {
	if tl == nil {
		return nil
	}
	media := make(map[string]Media, len(tl.Includes.Media))
	for _, m := range tl.Includes.Media {
		media[m.MediaKey] = m
	}

	out := make([]posts.Post, 0, len(tl.Data))
	for i, t := range tl.Data {
		text := CleanText(t.Text)
		out = append(out, posts.Post{
			ID:          IDPrefix + t.ID,
			Title:       Title(text, i+1),
			Description: truncate(text, maxDescription),
			Image:       imageFor(t, media),
			Link:        fmt.Sprintf("https://twitter.com/%s/status/%s", username, t.ID),
			Date:        t.CreatedAt.UTC().Format("2006-01-02"),
			Author:      author,
			Featured:    i < featuredCount,
			Metadata: &posts.Metadata{
				Category: Category,
				ReadTime: ReadTime,
				Likes:    t.PublicMetrics.LikeCount,
				Retweets: t.PublicMetrics.RetweetCount,
			},
		})
	}
	return out
}

// Merge puts fetched posts first and drops every previously merged social post,
// so repeated runs never duplicate entries.
func Merge(existing, fetched []posts.Post) []posts.Post {
	out := make([]posts.Post, 0, len(fetched)+len(existing))
	out = append(out, fetched...)
	for _, p := range existing {
		if strings.HasPrefix(p.ID, IDPrefix) {
			continue
		}
		out = append(out, p)
	}
	return out
}
