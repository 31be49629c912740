package hackquest

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/questpilot/hackquest-bot/internal/domain/platform"
	"golang.org/x/net/html"
)

// CoinBalance scrapes the quest page, which renders the balance as a span
// following the coin icon.
func (c *Client) CoinBalance(ctx context.Context, s *platform.Session) (int64, error) {
	if !s.Authenticated() {
		return 0, platform.Fatal("CoinBalance", platform.ErrUnauthenticated)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create balance request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("User-Agent", c.userAgent)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: s.AccessToken})

	raw, err := c.do(ctx, "CoinBalance", req)
	if err != nil {
		return 0, err
	}

	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return 0, platform.Retryable("CoinBalance", fmt.Errorf("parse quest page: %w", err))
	}
	text, ok := coinText(doc)
	if !ok {
		return 0, platform.Retryable("CoinBalance", fmt.Errorf("%w: coin element", platform.ErrNoData))
	}

	balance, err := strconv.ParseInt(strings.ReplaceAll(text, ",", ""), 10, 64)
	if err != nil {
		return 0, platform.Retryable("CoinBalance", fmt.Errorf("parse balance %q: %w", text, err))
	}
	return balance, nil
}

// coinText finds the first img with alt="coin" and returns the text of the
// span that follows it in document order.
func coinText(doc *html.Node) (string, bool) {
	seenCoin := false
	var text string
	var found bool

	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "img" && attr(n, "alt") == "coin":
				seenCoin = true
			case n.Data == "span" && seenCoin:
				text, found = strings.TrimSpace(nodeText(n)), true
				return true
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if walk(child) {
				return true
			}
		}
		return false
	}
	walk(doc)
	return text, found
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(nodeText(child))
	}
	return sb.String()
}
