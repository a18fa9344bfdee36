package crawler

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/bcdodgeme-bot/nothere/models"
	"github.com/bcdodgeme-bot/nothere/urlnorm"
)

const (
	maxTitleLen    = 500
	maxContentLen  = 50000
	maxLinkTextLen = 500
)

// Extracted is the usable output of one fetched HTML document.
type Extracted struct {
	Title   string
	Content string
	Links   []models.Link
}

// extractContent parses HTML, strips boilerplate elements, and pulls out the
// title, the whitespace-collapsed text, and the outbound links resolved
// against the final URL.
func extractContent(body []byte, contentType, baseURL string) (*Extracted, error) {
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("script, style, nav, footer, header").Remove()

	content := strings.Join(strings.Fields(doc.Text()), " ")

	var links []models.Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		lower := strings.ToLower(href)
		if strings.HasPrefix(lower, "mailto:") ||
			strings.HasPrefix(lower, "tel:") ||
			strings.HasPrefix(lower, "javascript:") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		absolute := urlnorm.Normalize(base.ResolveReference(ref).String())

		links = append(links, models.Link{
			TargetURL: absolute,
			Text:      truncate(strings.TrimSpace(s.Text()), maxLinkTextLen),
		})
	})

	return &Extracted{
		Title:   truncate(title, maxTitleLen),
		Content: truncate(content, maxContentLen),
		Links:   links,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
