// services/reconcile_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gewnthar/sdmxmeta/models"
)

func pacificAvailability() *models.AvailabilityConstraint {
	return &models.AvailabilityConstraint{
		ConstraintID:      "CR_A_DF_BP50",
		AgencyID:          "SPC",
		Version:           "1.0",
		DataflowRef:       models.DataflowRef{ID: "DF_BP50", AgencyID: "SPC", Version: "1.0"},
		TotalObservations: 1423,
		ExtractedAt:       time.Now().UTC(),
		Dimensions: []models.DimensionAvailability{
			{DimensionID: "FREQ", AvailableValues: []string{"A"}, TotalCount: 1, ValueType: models.ValueTypeCodelist},
			{DimensionID: "GEO_PICT", AvailableValues: []string{"CK", "FJ", "TO"}, TotalCount: 3, ValueType: models.ValueTypeCodelist},
		},
		TimeCoverage: &models.TimeAvailability{
			Start: "2020-01-01", End: "2023-12-31",
			Format: models.TimeFormatDate, TotalPeriods: 4,
		},
	}
}

func TestCompareSchemaAvailability(t *testing.T) {
	schema := pacificSchema()
	schema.Dimensions[1].CodelistID = "CL_GEO_PICT"
	schema.Dimensions[1].CodelistAgency = "SPC"
	schema.Dimensions[1].CodelistVersion = "1.0"

	report := CompareSchemaAvailability(schema, pacificAvailability())
	require.NotNil(t, report)

	assert.True(t, report.DataflowRefMatches)
	assert.Empty(t, report.Notes)
	assert.Equal(t, int64(1423), report.TotalObservations)
	require.NotNil(t, report.TimeCoverage)
	assert.Equal(t, 4, report.TimeCoverage.TotalPeriods)

	require.Len(t, report.Dimensions, 2)
	geo := report.Dimensions[1]
	assert.Equal(t, "GEO_PICT", geo.DimensionID)
	assert.Equal(t, []string{"CK", "FJ", "TO"}, geo.AvailableValues)
	assert.Equal(t, "CL_GEO_PICT", geo.CodelistID)
	assert.True(t, geo.RequiresCodelistFetch, "full comparison needs the external codelist fetched")

	freq := report.Dimensions[0]
	assert.False(t, freq.RequiresCodelistFetch, "no codelist bound, nothing to fetch")
}

func TestCompareSchemaAvailabilityRefMismatch(t *testing.T) {
	availability := pacificAvailability()
	availability.DataflowRef.ID = "DF_OTHER"

	report := CompareSchemaAvailability(pacificSchema(), availability)

	assert.False(t, report.DataflowRefMatches, "mismatch is reported, not fatal")
	require.NotEmpty(t, report.Notes)
	assert.Contains(t, report.Notes[0], "DF_OTHER")
	assert.Contains(t, report.Notes[0], "DF_BP50")
}

func TestFindDataGaps(t *testing.T) {
	gaps := FindDataGaps(pacificAvailability(), map[string][]string{
		"GEO_PICT": {"CK", "FJ", "TO", "WS", "VU"},
		"FREQ":     {"A"},
	})

	assert.Equal(t, []string{"VU", "WS"}, gaps["GEO_PICT"])
	_, present := gaps["FREQ"]
	assert.False(t, present, "dimensions with no gap are omitted")
	assert.Len(t, gaps, 1)
}

func TestFindDataGapsUnknownDimension(t *testing.T) {
	// Expected values for a dimension the constraint never mentions: every
	// expected value is a gap.
	gaps := FindDataGaps(pacificAvailability(), map[string][]string{
		"INDICATOR": {"BP_X", "BP_M"},
	})
	assert.Equal(t, []string{"BP_M", "BP_X"}, gaps["INDICATOR"])
}
