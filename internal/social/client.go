package social

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/decision-labs/contour/internal/logger"
)

const (
	DefaultBaseURL    = "https://api.twitter.com"
	DefaultMaxResults = 10
	DefaultTimeout    = 15 * time.Second
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Tweet struct {
	ID            string        `json:"id"`
	Text          string        `json:"text"`
	CreatedAt     time.Time     `json:"created_at"`
	PublicMetrics PublicMetrics `json:"public_metrics"`
	Attachments   *Attachments  `json:"attachments,omitempty"`
}

type PublicMetrics struct {
	LikeCount    int `json:"like_count"`
	RetweetCount int `json:"retweet_count"`
}

type Attachments struct {
	MediaKeys []string `json:"media_keys"`
}

type Media struct {
	MediaKey        string `json:"media_key"`
	Type            string `json:"type"`
	URL             string `json:"url"`
	PreviewImageURL string `json:"preview_image_url"`
}

// Timeline is the tweets endpoint response.
type Timeline struct {
	Data     []Tweet `json:"data"`
	Includes struct {
		Media []Media `json:"media"`
	} `json:"includes"`
}

type userResponse struct {
	Data *struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

// Client talks to the v2 API. The HTTP capability is supplied by the caller.
type Client struct {
	http       Doer
	baseURL    string
	token      string
	maxResults int
	log        *zap.Logger
}

func NewClient(doer Doer, baseURL, token string, maxResults int) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: DefaultTimeout}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Client{
		http:       doer,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		maxResults: maxResults,
		log:        logger.Named("social"),
	}
}

// Fetch resolves username and returns its recent tweets with their media.
func (c *Client) Fetch(ctx context.Context, username string) (*Timeline, error) {
	if c.token == "" {
		return nil, ErrNoToken
	}

	var user userResponse
	userPath := "/2/users/by/username/" + url.PathEscape(username)
	if err := c.get(ctx, userPath, url.Values{"user.fields": {"profile_image_url"}}, &user); err != nil {
		return nil, err
	}
	if user.Data == nil || user.Data.ID == "" {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}

	q := url.Values{
		"max_results":  {strconv.Itoa(c.maxResults)},
		"tweet.fields": {"created_at,public_metrics,attachments"},
		"expansions":   {"attachments.media_keys"},
		"media.fields": {"url,preview_image_url,type"},
	}
	var tl Timeline
	if err := c.get(ctx, "/2/users/"+url.PathEscape(user.Data.ID)+"/tweets", q, &tl); err != nil {
		return nil, err
	}
	c.log.Debug("fetched timeline", zap.String("username", username), zap.Int("tweets", len(tl.Data)))
	return &tl, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("social: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{Status: resp.StatusCode, Endpoint: path, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("social: decode %s: %w", path, err)
	}
	return nil
}
