// sdmx/warnings.go
package sdmx

import "fmt"

// Warnings collects degraded-data notes during an extraction. Extraction
// stays a pure function: callers get the warnings back alongside the value
// and decide whether and how to log them.
type Warnings []string

// Addf records one formatted warning.
func (w *Warnings) Addf(format string, args ...any) {
	*w = append(*w, fmt.Sprintf(format, args...))
}
