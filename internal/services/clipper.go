package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Clipper fetches retailer product pages so item sources can be labelled
// with the real product title. It is the server-side counterpart of the
// browser extension's page automation.
type Clipper struct {
	client *http.Client
}

func NewClipper() *Clipper {
	return &Clipper{client: &http.Client{Timeout: 10 * time.Second}}
}

// PageTitle fetches url and returns its og:title, falling back to the
// <title> element.
func (clipper *Clipper) PageTitle(ctx context.Context, url string) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	response, err := clipper.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", response.StatusCode)
	}

	document, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}

	if title, ok := document.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			return trimmed, nil
		}
	}
	if title := strings.TrimSpace(document.Find("title").First().Text()); title != "" {
		return title, nil
	}
	return "", errors.New("no title found")
}
