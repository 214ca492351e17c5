// services/reconcile_service.go
package services

import (
	"fmt"
	"log"
	"sort"

	"github.com/gewnthar/sdmxmeta/models"
)

// CompareSchemaAvailability reconciles the theoretical schema of a dataflow
// with its availability constraint. Only locally knowable facts go into the
// report: the availability-side value sets, and whether a full comparison
// would need the schema's codelist fetched, which is the caller's job
// (see FindDataGaps). A dataflow-ref mismatch is reported, not fatal.
func CompareSchemaAvailability(schema *models.DataflowSchema, availability *models.AvailabilityConstraint) *models.ComparisonReport {
	report := &models.ComparisonReport{
		SchemaDataflowID:     schema.DataflowInfo.ID,
		ConstraintDataflowID: availability.DataflowRef.ID,
		TotalObservations:    availability.TotalObservations,
		TimeCoverage:         availability.TimeCoverage,
	}

	report.DataflowRefMatches = schema.DataflowInfo.ID == availability.DataflowRef.ID &&
		schema.DataflowInfo.AgencyID == availability.DataflowRef.AgencyID
	if !report.DataflowRefMatches {
		note := fmt.Sprintf("availability constraint references dataflow %s:%s but schema describes %s:%s",
			availability.DataflowRef.AgencyID, availability.DataflowRef.ID,
			schema.DataflowInfo.AgencyID, schema.DataflowInfo.ID)
		report.Notes = append(report.Notes, note)
		log.Printf("WARN Service: %s\n", note)
	}

	codelists := schema.CodelistColumns()
	for _, dim := range availability.Dimensions {
		comparison := models.DimensionComparison{
			DimensionID:     dim.DimensionID,
			AvailableCount:  dim.TotalCount,
			AvailableValues: dim.AvailableValues,
		}
		if ref, ok := codelists[dim.DimensionID]; ok {
			comparison.CodelistID = ref.CodelistID
			comparison.RequiresCodelistFetch = true
		}
		report.Dimensions = append(report.Dimensions, comparison)
	}
	return report
}

// FindDataGaps computes, per dimension, the expected values (an externally
// fetched full value list, typically a codelist) that have no published
// observations. Dimensions with no gap are omitted entirely.
func FindDataGaps(availability *models.AvailabilityConstraint, expected map[string][]string) map[string][]string {
	gaps := make(map[string][]string)
	for dimensionID, expectedValues := range expected {
		available := make(map[string]bool)
		for _, v := range availability.AvailableValues(dimensionID) {
			available[v] = true
		}

		var missing []string
		seen := make(map[string]bool)
		for _, v := range expectedValues {
			if !available[v] && !seen[v] {
				missing = append(missing, v)
				seen[v] = true
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			gaps[dimensionID] = missing
		}
	}
	return gaps
}
