// sdmx/error_diagnosis.go
package sdmx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/beevik/etree"
)

// describeErrorPayload summarizes a payload that did not contain the element
// we were looking for. Providers frequently answer with an HTML error page or
// a provider-specific XML error body; surfacing what actually came back makes
// those failures diagnosable from the error message alone.
func describeErrorPayload(payload []byte, root *etree.Element) string {
	if looksLikeHTML(root) {
		if title := htmlErrorTitle(payload); title != "" {
			return fmt.Sprintf("provider returned an HTML page titled %q", title)
		}
		return "provider returned an HTML page with no title"
	}
	return fmt.Sprintf("top-level elements found: %s", sampleElementNames(root))
}

func looksLikeHTML(root *etree.Element) bool {
	return strings.EqualFold(root.Tag, "html") || strings.EqualFold(root.Tag, "body")
}

// htmlErrorTitle pulls the <title> (or first heading) out of an HTML error
// page. Returns "" when the page yields neither.
func htmlErrorTitle(payload []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return ""
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
