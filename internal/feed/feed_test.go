package feed

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/decision-labs/contour/internal/posts"
)

var site = Site{
	Title:       "Decision Labs Blog",
	URL:         "https://decision-labs.com/",
	Description: "Insights on decision science.",
}

func samplePosts() []posts.Post {
	return []posts.Post{
		{ID: "p1", Title: "First", Description: "Older post", Date: "2024-01-10", Author: "Ada"},
		{ID: "p2", Title: "Second & <more>", Description: "Has ]]> inside", Date: "2024-03-05",
			Slug: "second", Metadata: &posts.Metadata{Category: "Article"}},
		{ID: "p3", Title: "External", Date: "2024-02-01T12:00:00Z", Link: "https://example.com/ext"},
		{ID: "bad-date", Title: "Broken", Date: "not a date"},
		{ID: "no-title", Date: "2024-02-02"},
		{ID: "no-date", Title: "Undated"},
	}
}

func generate(ps []posts.Post, at time.Time) (string, Result) {
	var buf bytes.Buffer
	res, err := Generate(&buf, site, ps, at)
	Expect(err).NotTo(HaveOccurred())
	return buf.String(), res
}

type parsed struct {
	Channel struct {
		Title         string `xml:"title"`
		Link          string `xml:"link"`
		Language      string `xml:"language"`
		LastBuildDate string `xml:"lastBuildDate"`
		Items         []struct {
			Title       string `xml:"title"`
			Link        string `xml:"link"`
			GUID        string `xml:"guid"`
			Description string `xml:"description"`
			PubDate     string `xml:"pubDate"`
			Author      string `xml:"author"`
			Category    string `xml:"category"`
		} `xml:"item"`
	} `xml:"channel"`
}

var _ = Describe("Generate", func() {
	build := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)

	It("skips invalid records without failing", func() {
		_, res := generate(samplePosts(), build)
		Expect(res.Items).To(Equal(3))
		Expect(res.Skipped).To(Equal(3))
	})

	It("produces a well-formed RSS 2.0 document", func() {
		out, _ := generate(samplePosts(), build)
		Expect(out).To(HavePrefix(`<?xml version="1.0" encoding="UTF-8"?>`))
		Expect(out).To(ContainSubstring(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`))
		Expect(out).To(ContainSubstring(`<atom:link href="https://decision-labs.com/rss.xml" rel="self" type="application/rss+xml">`))

		var doc parsed
		Expect(xml.Unmarshal([]byte(out), &doc)).To(Succeed())
		Expect(doc.Channel.Title).To(Equal("Decision Labs Blog"))
		Expect(doc.Channel.Link).To(Equal("https://decision-labs.com/blog"))
		Expect(doc.Channel.Language).To(Equal("en-us"))
		Expect(doc.Channel.LastBuildDate).To(Equal("Mon, 01 Apr 2024 08:00:00 GMT"))
	})

	It("sorts items newest first", func() {
		out, _ := generate(samplePosts(), build)
		var doc parsed
		Expect(xml.Unmarshal([]byte(out), &doc)).To(Succeed())

		var titles []string
		for _, it := range doc.Channel.Items {
			titles = append(titles, it.Title)
		}
		Expect(titles).To(Equal([]string{"Second & <more>", "External", "First"}))
	})

	It("fills item fields", func() {
		out, _ := generate(samplePosts(), build)
		var doc parsed
		Expect(xml.Unmarshal([]byte(out), &doc)).To(Succeed())

		second, external, first := doc.Channel.Items[0], doc.Channel.Items[1], doc.Channel.Items[2]

		Expect(second.Link).To(Equal("https://decision-labs.com/blog/second"))
		Expect(second.GUID).To(Equal("https://decision-labs.com/blog/p2"))
		Expect(second.Description).To(Equal("Has ]]> inside"))
		Expect(second.Category).To(Equal("Article"))
		Expect(second.PubDate).To(Equal("Tue, 05 Mar 2024 00:00:00 GMT"))
		Expect(second.Author).To(Equal("Decision Labs"))

		Expect(external.Link).To(Equal("https://example.com/ext"))
		Expect(external.PubDate).To(Equal("Thu, 01 Feb 2024 12:00:00 GMT"))
		Expect(external.Category).To(BeEmpty())

		Expect(first.Author).To(Equal("Ada"))
	})

	It("wraps titles and descriptions in CDATA", func() {
		out, _ := generate(samplePosts(), build)
		Expect(out).To(ContainSubstring("<title><![CDATA[Second & <more>]]></title>"))
		Expect(out).To(ContainSubstring(`<guid isPermaLink="false">`))
		Expect(out).NotTo(ContainSubstring("<category></category>"))
	})

	It("differs between runs only in the build date", func() {
		a, _ := generate(samplePosts(), build)
		b, _ := generate(samplePosts(), build.Add(36*time.Hour))
		Expect(a).NotTo(Equal(b))

		stamp := regexp.MustCompile(`<lastBuildDate>[^<]*</lastBuildDate>`)
		Expect(stamp.ReplaceAllString(a, "")).To(Equal(stamp.ReplaceAllString(b, "")))

		c, _ := generate(samplePosts(), build)
		Expect(c).To(Equal(a))
	})

	It("does not depend on input order", func() {
		ps := samplePosts()
		reversed := make([]posts.Post, len(ps))
		for i, p := range ps {
			reversed[len(ps)-1-i] = p
		}
		a, _ := generate(ps, build)
		b, _ := generate(reversed, build)
		Expect(b).To(Equal(a))
	})

	It("does not reorder the caller's slice", func() {
		ps := samplePosts()
		generate(ps, build)
		Expect(ps[0].ID).To(Equal("p1"))
	})

	It("emits an empty channel for no posts", func() {
		out, res := generate(nil, build)
		Expect(res).To(Equal(Result{}))
		Expect(strings.Count(out, "<item>")).To(Equal(0))
	})
})

var _ = Describe("WriteFile", func() {
	It("creates parent directories", func() {
		path := filepath.Join(GinkgoT().TempDir(), "public", "rss.xml")
		res, err := WriteFile(path, site, samplePosts(), time.Now())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Items).To(Equal(3))

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("<item>"))
	})
})
