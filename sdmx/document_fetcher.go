// sdmx/document_fetcher.go
package sdmx

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultFetchTimeout is used when ResolveDocument is called with a zero
// timeout. SDMX structure endpoints can be slow; 30s matches what the
// registries themselves advertise.
const DefaultFetchTimeout = 30 * time.Second

const structureAccept = "application/vnd.sdmx.structure+xml;version=2.1, application/xml;q=0.9, */*;q=0.5"

// maxDocumentBytes caps how much of a response we will read. Structure and
// constraint documents are small; anything bigger is a misdirected download.
const maxDocumentBytes = 32 << 20

// ResolveDocument turns a source that is either inline XML or an HTTP(S) URL
// into raw document bytes. Inline XML is recognized by its leading '<'.
// Fetching is the only I/O in this package; the extractors themselves never
// touch the network.
func ResolveDocument(source string, timeout time.Duration) ([]byte, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return nil, fmt.Errorf("document source is empty")
	}
	if strings.HasPrefix(trimmed, "<") {
		return []byte(trimmed), nil
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return nil, fmt.Errorf("document source is neither inline XML nor an HTTP(S) URL: %.60q", trimmed)
	}
	return FetchDocument(trimmed, timeout)
}

// FetchDocument downloads a document from url with a bounded timeout.
func FetchDocument(url string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	client := http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", structureAccept)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}

	// Keep non-200 bodies: some agencies put the useful diagnostic in an
	// error payload the extractor knows how to describe.
	if resp.StatusCode != http.StatusOK {
		return body, fmt.Errorf("failed to fetch document from %s: received status code %d", url, resp.StatusCode)
	}
	return body, nil
}
