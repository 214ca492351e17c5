// report/csv.go
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/gewnthar/sdmxmeta/models"
)

// maxSampleValues bounds the sample_values column so a dimension with
// thousands of published codes does not blow up a spreadsheet cell.
const maxSampleValues = 20

type comparisonRow struct {
	DimensionID           string `csv:"dimension_id"`
	AvailableCount        int    `csv:"available_count"`
	SampleValues          string `csv:"sample_values"`
	CodelistID            string `csv:"codelist_id"`
	RequiresCodelistFetch bool   `csv:"requires_codelist_fetch"`
}

// WriteComparisonCSV renders a schema-vs-availability report as CSV, one row
// per dimension.
func WriteComparisonCSV(w io.Writer, rep *models.ComparisonReport) error {
	rows := make([]comparisonRow, 0, len(rep.Dimensions))
	for _, dim := range rep.Dimensions {
		sample := dim.AvailableValues
		truncated := false
		if len(sample) > maxSampleValues {
			sample = sample[:maxSampleValues]
			truncated = true
		}
		joined := strings.Join(sample, " ")
		if truncated {
			joined += " ..."
		}
		rows = append(rows, comparisonRow{
			DimensionID:           dim.DimensionID,
			AvailableCount:        dim.AvailableCount,
			SampleValues:          joined,
			CodelistID:            dim.CodelistID,
			RequiresCodelistFetch: dim.RequiresCodelistFetch,
		})
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal comparison report to CSV: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write comparison CSV: %w", err)
	}
	return nil
}

// WriteGapsCSV renders a gap report as CSV, one row per missing value, with
// dimensions in stable order.
func WriteGapsCSV(w io.Writer, gaps map[string][]string) error {
	dimensionIDs := make([]string, 0, len(gaps))
	for id := range gaps {
		dimensionIDs = append(dimensionIDs, id)
	}
	sort.Strings(dimensionIDs)

	var rows []models.GapReportRow
	for _, id := range dimensionIDs {
		for _, missing := range gaps[id] {
			rows = append(rows, models.GapReportRow{DimensionID: id, MissingValue: missing})
		}
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal gap report to CSV: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write gap CSV: %w", err)
	}
	return nil
}
