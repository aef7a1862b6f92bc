// Package news fetches the distribution news feed. Arch expects manual
// intervention to be announced there, so the full routine surfaces unread
// items before touching the system.
package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/charmbracelet/glamour"
	"github.com/google/renameio/v2"

	"github.com/archmaint/archmaint/pkg/config"
	"github.com/archmaint/archmaint/pkg/errors"
	"github.com/archmaint/archmaint/pkg/system"
)

// Item is one news entry.
type Item struct {
	Title     string
	Link      string
	Published time.Time
}

// Client fetches and parses the feed.
type Client struct {
	url   string
	limit int
	http  *http.Client
}

// NewClient builds a Client from the news configuration.
func NewClient(cfg config.News) *Client {
	return &Client{
		url:   cfg.URL,
		limit: cfg.Limit,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Fetch downloads the RSS feed and returns up to the configured number of
// items, newest first (feed order).
func (c *Client) Fetch(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFeedFetch, "invalid feed URL")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFeedFetch, "feed download failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.ErrFeedFetch, "feed returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFeedFetch, "reading feed body failed")
	}

	return parseFeed(body, c.limit)
}

// parseFeed reads RSS 2.0, the format the Arch news feed uses.
func parseFeed(data []byte, limit int) ([]Item, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrFeedParse, "feed is not well-formed XML")
	}

	channel := doc.FindElement("//channel")
	if channel == nil {
		return nil, errors.New(errors.ErrFeedParse, "feed has no channel element")
	}

	var items []Item
	for _, el := range channel.SelectElements("item") {
		item := Item{
			Title: elementText(el, "title"),
			Link:  elementText(el, "link"),
		}
		if pub := elementText(el, "pubDate"); pub != "" {
			item.Published = parsePubDate(pub)
		}
		items = append(items, item)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}

func elementText(parent *etree.Element, name string) string {
	if el := parent.SelectElement(name); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

func parsePubDate(s string) time.Time {
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Unread returns the items published after lastSeen.
func Unread(items []Item, lastSeen time.Time) []Item {
	var unread []Item
	for _, item := range items {
		if item.Published.After(lastSeen) {
			unread = append(unread, item)
		}
	}
	return unread
}

// lastSeenFile stores the newest publish time already shown to the user.
func lastSeenFile() string {
	return filepath.Join(config.StateDir(), "news-last-seen")
}

// LastSeen reads the stored publish time. The zero time means the feed has
// never been shown.
func LastSeen() time.Time {
	data, err := os.ReadFile(lastSeenFile())
	if err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		return time.Time{}
	}
	return t
}

// MarkSeen records the newest publish time among items.
func MarkSeen(items []Item) error {
	var newest time.Time
	for _, item := range items {
		if item.Published.After(newest) {
			newest = item.Published
		}
	}
	if newest.IsZero() {
		return nil
	}

	path := lastSeenFile()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create state directory")
	}
	if err := renameio.WriteFile(path, []byte(newest.Format(time.RFC3339)+"\n"), 0644); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to record news state")
	}
	return nil
}

// Markdown renders items as a markdown list.
func Markdown(items []Item) string {
	var b strings.Builder
	b.WriteString("# Arch news\n\n")
	for _, item := range items {
		date := ""
		if !item.Published.IsZero() {
			date = item.Published.Format("2006-01-02") + ": "
		}
		fmt.Fprintf(&b, "- %s[%s](%s)\n", date, item.Title, item.Link)
	}
	return b.String()
}

// Render writes items through glamour for terminal display.
func Render(w io.Writer, items []Item) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}
	out, err := renderer.Render(Markdown(items))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// OpenBrowser hands the news page to the desktop's URL handler. The default
// feed URL points at the RSS document, so the human-facing parent page is
// opened instead; other URLs are opened as-is.
func OpenBrowser(ctx context.Context, r system.Runner, url string) error {
	return r.Run(ctx, "xdg-open", strings.TrimSuffix(url, "feeds/news/"))
}
