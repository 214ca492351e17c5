// models/availability.go
package models

import "time"

// Value types for a DimensionAvailability entry.
const (
	ValueTypeCodelist = "codelist"
	ValueTypeTime     = "time"
	ValueTypeFreeText = "free_text"
)

// Time coverage formats.
const (
	TimeFormatDate     = "date"
	TimeFormatDiscrete = "discrete"
	TimeFormatYear     = "year"
	TimeFormatQuarter  = "quarter"
	TimeFormatMonth    = "month"
)

// DataflowRef is the dataflow a constraint attaches to.
type DataflowRef struct {
	ID       string `json:"id"`
	AgencyID string `json:"agency_id"`
	Version  string `json:"version"`
}

// DimensionAvailability lists the values of one dimension that actually have
// published observations. AvailableValues is sorted and deduplicated.
type DimensionAvailability struct {
	DimensionID     string   `json:"dimension_id"`
	AvailableValues []string `json:"available_values"`
	TotalCount      int      `json:"total_count"`
	ValueType       string   `json:"value_type"`
}

// TimeAvailability describes the time coverage of published data.
// Start/End keep the raw strings from the document; StartDate/EndDate are set
// only when the bounds parsed as ISO calendar dates. Gaps stays empty unless
// a reconciliation call fills it in.
type TimeAvailability struct {
	Start        string     `json:"start"`
	End          string     `json:"end"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Format       string     `json:"format"`
	TotalPeriods int        `json:"total_periods"`
	Gaps         []string   `json:"gaps,omitempty"`
}

// AvailabilityConstraint is the observed-data envelope for one dataflow,
// extracted from a ContentConstraint document. Immutable once built.
type AvailabilityConstraint struct {
	ConstraintID      string                  `json:"constraint_id"`
	AgencyID          string                  `json:"agency_id"`
	Version           string                  `json:"version"`
	DataflowRef       DataflowRef             `json:"dataflow_ref"`
	TotalObservations int64                   `json:"total_observations"`
	ExtractedAt       time.Time               `json:"extracted_at"`
	Dimensions        []DimensionAvailability `json:"dimensions"`
	TimeCoverage      *TimeAvailability       `json:"time_coverage,omitempty"`
}

// AvailableValues returns the published values for one dimension, or nil if
// the constraint says nothing about it.
func (c *AvailabilityConstraint) AvailableValues(dimensionID string) []string {
	for _, dim := range c.Dimensions {
		if dim.DimensionID == dimensionID {
			return dim.AvailableValues
		}
	}
	return nil
}
