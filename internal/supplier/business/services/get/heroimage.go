package get

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"catalogsync_api/pkg/logger"
	"catalogsync_api/pkg/remote"
)

// The catalog API does not flag a primary image; the product page renders it
// as an inline background-image style, which is what we recover here.
var heroStyleRe = regexp.MustCompile(`background-image\s*:\s*url\(\s*['"]?([^'")\s]+)['"]?\s*\)`)

type HeroImageEngine struct {
	exec    *remote.Executor
	siteURL string
	log     logger.Logger
}

func NewHeroImageEngine(exec *remote.Executor, siteURL string, writer io.Writer) *HeroImageEngine {
	return &HeroImageEngine{
		exec:    exec,
		siteURL: siteURL,
		log:     logger.NewLogger(writer, "[HeroImage]"),
	}
}

// FetchHeroImage scrapes the supplier product page for slug and returns the
// hero image reference, or "" when the page carries none. A missing hero is
// not an error.
func (e *HeroImageEngine) FetchHeroImage(ctx context.Context, slug string) (string, error) {
	if e.siteURL == "" || slug == "" {
		return "", nil
	}
	url := fmt.Sprintf("%s/%s", strings.TrimSuffix(e.siteURL, "/"), strings.TrimPrefix(slug, "/"))

	_, body, err := e.exec.Do(ctx, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, url, nil)
	})
	if err != nil {
		return "", fmt.Errorf("fetching product page %s: %w", slug, err)
	}

	match := heroStyleRe.FindSubmatch(body)
	if match == nil {
		return "", nil
	}
	return string(match[1]), nil
}
