// services/key_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/gewnthar/sdmxmeta/models"
)

// ConstructSDMXKey builds the dot-separated SDMX query key for a schema from
// a dimension-id to value filter map. Segment i of the output always
// corresponds to DimensionOrder()[i]; dimensions missing from the filter map
// contribute an empty segment, which SDMX reads as "all values". Filter keys
// that name a dimension the schema does not have are a caller error, reported
// with the list of valid ids.
func ConstructSDMXKey(schema *models.DataflowSchema, filters map[string]string) (string, error) {
	order := schema.DimensionOrder()

	known := make(map[string]bool, len(order))
	for _, id := range order {
		known[id] = true
	}
	for id := range filters {
		if !known[id] {
			return "", fmt.Errorf("unknown dimension %q in filters; valid dimensions are: %s", id, strings.Join(order, ", "))
		}
	}

	segments := make([]string, len(order))
	for i, id := range order {
		segments[i] = filters[id]
	}
	return strings.Join(segments, "."), nil
}
