package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxDownloadSize caps the size of a downloaded document.
const maxDownloadSize = 4 << 20

// FetchText downloads the document found at the url and returns its content.
// A response with a non 2xx status code is reported as an error.
func FetchText(ctx context.Context, client *http.Client, url string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("unable to create request for %s: %w", url, err)
	}

	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to download file from URI: %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("unable to download file from URI: %s, status %v", url, res.Status)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxDownloadSize))
	if err != nil {
		return "", fmt.Errorf("unable to read response body: %w", err)
	}

	if ctype := http.DetectContentType(data); !strings.HasPrefix(ctype, "text/") {
		return "", fmt.Errorf("the downloaded file is not a text document: %s", ctype)
	}

	return string(data), nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
