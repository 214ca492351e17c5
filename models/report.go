// models/report.go
package models

// DimensionComparison is the per-dimension slice of a schema-vs-availability
// report. Only what is locally knowable goes in here: the availability-side
// value set, and whether completing the comparison needs an external codelist
// fetch.
type DimensionComparison struct {
	DimensionID           string   `json:"dimension_id" csv:"dimension_id"`
	AvailableCount        int      `json:"available_count" csv:"available_count"`
	AvailableValues       []string `json:"available_values" csv:"-"`
	CodelistID            string   `json:"codelist_id,omitempty" csv:"codelist_id"`
	RequiresCodelistFetch bool     `json:"requires_codelist_fetch" csv:"requires_codelist_fetch"`
}

// ComparisonReport reconciles a DataflowSchema with an AvailabilityConstraint.
// A dataflow-ref mismatch is reported here, never treated as fatal.
type ComparisonReport struct {
	SchemaDataflowID     string                `json:"schema_dataflow_id"`
	ConstraintDataflowID string                `json:"constraint_dataflow_id"`
	DataflowRefMatches   bool                  `json:"dataflow_ref_matches"`
	Notes                []string              `json:"notes,omitempty"`
	Dimensions           []DimensionComparison `json:"dimensions"`
	TimeCoverage         *TimeAvailability     `json:"time_coverage,omitempty"`
	TotalObservations    int64                 `json:"total_observations"`
}

// GapReportRow is one missing value of one dimension, for CSV export.
type GapReportRow struct {
	DimensionID  string `json:"dimension_id" csv:"dimension_id"`
	MissingValue string `json:"missing_value" csv:"missing_value"`
}
