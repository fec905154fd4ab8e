package link

import (
	"bytes"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxContentLength = 10000

// contentSelectors are tried in order; the first non-empty match wins.
var contentSelectors = []string{
	"article",
	".content",
	".post-content",
	".entry-content",
	".article-content",
	"main",
	".main-content",
}

// faviconSelectors are tried in order of the original markup conventions.
var faviconSelectors = []string{
	`link[rel="icon"]`,
	`link[rel="shortcut icon"]`,
	`link[rel="apple-touch-icon"]`,
}

// noiseSelector names the elements stripped before falling back to
// whole-document text.
const noiseSelector = "script, style, nav, footer, header, .sidebar, .menu"

var whitespaceRe = regexp.MustCompile(`\s+`)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Run derives page metadata from raw HTML. Once the document parses, every
// field is produced best-effort and the call cannot fail.
func (e *Extractor) Run(data []byte, pageURL *url.URL) (*PageContent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	content := e.extractContent(doc)

	return &PageContent{
		Title:    e.extractTitle(doc),
		Content:  content,
		Favicon:  e.extractFavicon(doc, pageURL),
		Domain:   pageURL.Hostname(),
		ReadTime: EstimateReadTime(content),
	}, nil
}

func (e *Extractor) extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if ogTitle, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if title := strings.TrimSpace(ogTitle); title != "" {
			return title
		}
	}
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title
	}
	return "Untitled"
}

func (e *Extractor) extractContent(doc *goquery.Document) string {
	var content string

	for _, selector := range contentSelectors {
		selection := doc.Find(selector)
		if selection.Length() > 0 {
			content = selection.Text()
			break
		}
	}

	// Fall back to whole-document text with noise elements stripped
	if content == "" {
		doc.Find(noiseSelector).Remove()
		content = doc.Find("body").Text()
	}

	content = normalizeWhitespace(content)

	if runes := []rune(content); len(runes) > maxContentLength {
		content = string(runes[:maxContentLength]) + "..."
	}

	return content
}

func (e *Extractor) extractFavicon(doc *goquery.Document, pageURL *url.URL) string {
	var favicon string

	for _, selector := range faviconSelectors {
		if href, ok := doc.Find(selector).Attr("href"); ok && strings.TrimSpace(href) != "" {
			favicon = strings.TrimSpace(href)
			break
		}
	}

	if favicon == "" {
		return FaviconServiceURL(pageURL.Hostname())
	}

	if resolved, err := pageURL.Parse(favicon); err == nil {
		return resolved.String()
	}

	return favicon
}

// FaviconServiceURL synthesizes a well-known favicon service URL for a domain.
func FaviconServiceURL(domain string) string {
	return fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=32", domain)
}

// EstimateReadTime formats a reading estimate at 200 words per minute,
// floored at one minute.
func EstimateReadTime(content string) string {
	wordCount := len(strings.Fields(content))
	minutes := int(math.Round(float64(wordCount) / 200.0))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
