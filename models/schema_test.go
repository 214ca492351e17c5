// models/schema_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSchema() *DataflowSchema {
	return &DataflowSchema{
		DataflowInfo: DataflowInfo{AgencyID: "SPC", ID: "DF_POP", Version: "3.0"},
		Dimensions: []Dimension{
			// Deliberately out of document order; position decides.
			{ID: "GEO_PICT", Position: 2, CodelistID: "CL_GEO_PICT", CodelistAgency: "SPC", CodelistVersion: "1.0"},
			{ID: "FREQ", Position: 1, CodelistID: "CL_FREQ", CodelistAgency: "SDMX", CodelistVersion: "2.0"},
			{ID: "INDICATOR", Position: 3},
		},
		TimeDimension: &Dimension{ID: "TIME_PERIOD", Position: 4},
		Attributes: []Attribute{
			{ID: "UNIT_MEASURE", AssignmentStatus: AssignmentMandatory, CodelistID: "CL_UNIT", CodelistAgency: "SPC", CodelistVersion: "1.0"},
			{ID: "OBS_COMMENT", AssignmentStatus: AssignmentConditional},
		},
		Measures: []Measure{{ID: "OBS_VALUE", DataType: "Double"}},
	}
}

func TestRequiredAndOptionalColumnsAreDisjoint(t *testing.T) {
	schema := sampleSchema()
	required := schema.RequiredColumns()
	optional := schema.OptionalColumns()

	assert.GreaterOrEqual(t, len(required), len(schema.Dimensions)+len(schema.Measures))

	requiredSet := make(map[string]bool)
	for _, col := range required {
		requiredSet[col] = true
	}
	for _, col := range optional {
		assert.False(t, requiredSet[col], "column %s is both required and optional", col)
	}
}

func TestRequiredColumnsContents(t *testing.T) {
	schema := sampleSchema()
	assert.ElementsMatch(t,
		[]string{"GEO_PICT", "FREQ", "INDICATOR", "TIME_PERIOD", "OBS_VALUE", "UNIT_MEASURE"},
		schema.RequiredColumns())
	assert.Equal(t, []string{"OBS_COMMENT"}, schema.OptionalColumns())
}

func TestDimensionOrderSortsByPosition(t *testing.T) {
	schema := sampleSchema()
	assert.Equal(t, []string{"FREQ", "GEO_PICT", "INDICATOR", "TIME_PERIOD"}, schema.DimensionOrder())
}

func TestDimensionOrderIsPermutationOfAllDimensions(t *testing.T) {
	schema := sampleSchema()
	order := schema.DimensionOrder()

	expected := []string{"GEO_PICT", "FREQ", "INDICATOR", "TIME_PERIOD"}
	assert.ElementsMatch(t, expected, order)
	assert.Len(t, order, len(expected))
}

func TestDimensionOrderTimeDimensionPlacement(t *testing.T) {
	schema := sampleSchema()

	// Positioned time dimension slots in by its own position.
	schema.TimeDimension.Position = 1
	schema.Dimensions[1].Position = 2 // FREQ
	schema.Dimensions[0].Position = 3 // GEO_PICT
	schema.Dimensions[2].Position = 4 // INDICATOR
	assert.Equal(t, []string{"TIME_PERIOD", "FREQ", "GEO_PICT", "INDICATOR"}, schema.DimensionOrder())

	// Unpositioned time dimension goes last.
	schema.TimeDimension.Position = 0
	assert.Equal(t, []string{"FREQ", "GEO_PICT", "INDICATOR", "TIME_PERIOD"}, schema.DimensionOrder())

	// No time dimension at all.
	schema.TimeDimension = nil
	assert.Equal(t, []string{"FREQ", "GEO_PICT", "INDICATOR"}, schema.DimensionOrder())
}

func TestCodelistColumns(t *testing.T) {
	refs := sampleSchema().CodelistColumns()

	require.Contains(t, refs, "FREQ")
	assert.Equal(t, CodelistRef{CodelistID: "CL_FREQ", AgencyID: "SDMX", Version: "2.0"}, refs["FREQ"])
	assert.Contains(t, refs, "UNIT_MEASURE")
	assert.NotContains(t, refs, "INDICATOR", "free-form dimension has no codelist")
	assert.NotContains(t, refs, "TIME_PERIOD")
	assert.NotContains(t, refs, "OBS_COMMENT")
}

func TestAvailableValuesLookup(t *testing.T) {
	constraint := &AvailabilityConstraint{
		Dimensions: []DimensionAvailability{
			{DimensionID: "FREQ", AvailableValues: []string{"A", "Q"}},
		},
	}
	assert.Equal(t, []string{"A", "Q"}, constraint.AvailableValues("FREQ"))
	assert.Nil(t, constraint.AvailableValues("GEO_PICT"))
}
