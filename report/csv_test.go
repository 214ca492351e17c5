// report/csv_test.go
package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gewnthar/sdmxmeta/models"
)

func TestWriteComparisonCSV(t *testing.T) {
	rep := &models.ComparisonReport{
		SchemaDataflowID:     "DF_BP50",
		ConstraintDataflowID: "DF_BP50",
		DataflowRefMatches:   true,
		Dimensions: []models.DimensionComparison{
			{DimensionID: "FREQ", AvailableCount: 1, AvailableValues: []string{"A"}},
			{DimensionID: "GEO_PICT", AvailableCount: 3, AvailableValues: []string{"CK", "FJ", "TO"},
				CodelistID: "CL_GEO_PICT", RequiresCodelistFetch: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteComparisonCSV(&buf, rep))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "dimension_id,available_count,sample_values,codelist_id,requires_codelist_fetch", lines[0])
	assert.Contains(t, lines[1], "FREQ,1,A")
	assert.Contains(t, lines[2], "CK FJ TO")
	assert.Contains(t, lines[2], "CL_GEO_PICT")
}

func TestWriteComparisonCSVTruncatesLongValueLists(t *testing.T) {
	values := make([]string, 50)
	for i := range values {
		values[i] = "V"
	}
	rep := &models.ComparisonReport{
		Dimensions: []models.DimensionComparison{
			{DimensionID: "BIG", AvailableCount: 50, AvailableValues: values},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteComparisonCSV(&buf, rep))
	assert.Contains(t, buf.String(), "...")
}

func TestWriteGapsCSV(t *testing.T) {
	gaps := map[string][]string{
		"GEO_PICT":  {"VU", "WS"},
		"INDICATOR": {"BP_M"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteGapsCSV(&buf, gaps))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "dimension_id,missing_value", lines[0])
	// Dimensions come out in sorted order.
	assert.Equal(t, "GEO_PICT,VU", lines[1])
	assert.Equal(t, "GEO_PICT,WS", lines[2])
	assert.Equal(t, "INDICATOR,BP_M", lines[3])
}

func TestWriteGapsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGapsCSV(&buf, map[string][]string{}))
	assert.Equal(t, "dimension_id,missing_value", strings.TrimSpace(buf.String()))
}
