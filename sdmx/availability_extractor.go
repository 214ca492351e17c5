// sdmx/availability_extractor.go
package sdmx

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/gewnthar/sdmxmeta/models"
)

const timeDimensionID = "TIME_PERIOD"

var isoDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// ExtractAvailability parses a ContentConstraint document into an
// AvailabilityConstraint. Absence of the ContentConstraint element is fatal;
// absence of a CubeRegion just means the constraint carries no per-dimension
// detail (some only convey an observation count). Degraded metadata
// (non-numeric obs counts, unparsable date bounds) falls back to documented
// defaults and is reported through the returned warnings.
func ExtractAvailability(xmlData []byte) (*models.AvailabilityConstraint, Warnings, error) {
	return extractAvailability(defaultNavigator, xmlData)
}

func extractAvailability(nav *Navigator, xmlData []byte) (*models.AvailabilityConstraint, Warnings, error) {
	var warnings Warnings

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlData); err != nil {
		// Error pages are rarely well-formed XML; try to at least name the
		// page before giving up.
		if title := htmlErrorTitle(xmlData); title != "" {
			return nil, nil, fmt.Errorf("failed to parse availability document (provider returned a page titled %q): %w", title, err)
		}
		return nil, nil, fmt.Errorf("failed to parse availability document: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, nil, fmt.Errorf("availability document has no root element")
	}

	constraint := nav.FindFirst(root, "ContentConstraint")
	if constraint == nil && root.Tag == "ContentConstraint" {
		// Some providers return the constraint as the document root rather
		// than wrapped in a message envelope.
		constraint = root
	}
	if constraint == nil {
		// Agencies often return an HTML or XML error body instead of the
		// requested constraint; name what we actually got.
		return nil, nil, fmt.Errorf("no ContentConstraint element found in document: %s", describeErrorPayload(xmlData, root))
	}

	result := &models.AvailabilityConstraint{
		ConstraintID: AttrDefault(constraint, "id", models.Unknown),
		AgencyID:     AttrDefault(constraint, "agencyID", models.Unknown),
		Version:      AttrDefault(constraint, "version", "1.0"),
		ExtractedAt:  time.Now().UTC(),
	}

	result.TotalObservations = extractObservationCount(nav, constraint, &warnings)

	result.DataflowRef = models.DataflowRef{ID: models.Unknown, AgencyID: models.Unknown, Version: models.Unknown}
	if ref := nav.FindFirst(constraint, "Dataflow/Ref"); ref != nil {
		result.DataflowRef = models.DataflowRef{
			ID:       AttrDefault(ref, "id", models.Unknown),
			AgencyID: AttrDefault(ref, "agencyID", models.Unknown),
			Version:  AttrDefault(ref, "version", models.Unknown),
		}
	} else {
		warnings.Addf("constraint %s carries no Dataflow/Ref; dataflow identity is unknown", result.ConstraintID)
	}

	cubeRegion := nav.FindFirst(constraint, "CubeRegion")
	if cubeRegion == nil {
		warnings.Addf("constraint %s has no CubeRegion; no per-dimension availability", result.ConstraintID)
		return result, warnings, nil
	}

	for _, keyValue := range nav.FindAll(cubeRegion, "KeyValue") {
		dimensionID := AttrDefault(keyValue, "id", models.Unknown)
		values := distinctSortedValues(nav, keyValue)

		if dimensionID == timeDimensionID {
			coverage, entry := extractTimeCoverage(nav, keyValue, values, &warnings)
			result.TimeCoverage = coverage
			result.Dimensions = append(result.Dimensions, entry)
			continue
		}

		result.Dimensions = append(result.Dimensions, models.DimensionAvailability{
			DimensionID:     dimensionID,
			AvailableValues: values,
			TotalCount:      len(values),
			ValueType:       models.ValueTypeCodelist,
		})
	}

	return result, warnings, nil
}

// extractObservationCount reads the obs_count side-channel annotation. The
// value must be purely numeric; anything else is a warning and counts as
// zero, since availability metadata is best-effort.
func extractObservationCount(nav *Navigator, constraint *etree.Element, warnings *Warnings) int64 {
	for _, annotation := range nav.FindAll(constraint, "Annotation") {
		if AttrDefault(annotation, "id", "") != "obs_count" {
			continue
		}
		raw := nav.ChildText(annotation, "AnnotationTitle")
		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || count < 0 {
			warnings.Addf("obs_count annotation value %q is not a non-negative integer; defaulting to 0", raw)
			return 0
		}
		return count
	}
	return 0
}

// extractTimeCoverage builds the TimeAvailability for the TIME_PERIOD
// KeyValue, from either a TimeRange (calendar bounds) or discrete Value
// children. Gap detection is left to explicit reconciliation; the default
// gap list is empty.
func extractTimeCoverage(nav *Navigator, keyValue *etree.Element, values []string, warnings *Warnings) (*models.TimeAvailability, models.DimensionAvailability) {
	entry := models.DimensionAvailability{
		DimensionID:     timeDimensionID,
		AvailableValues: values,
		TotalCount:      len(values),
		ValueType:       models.ValueTypeTime,
	}

	timeRange := nav.FindFirst(keyValue, "TimeRange")
	if timeRange == nil {
		coverage := &models.TimeAvailability{
			Format:       models.TimeFormatDiscrete,
			TotalPeriods: len(values),
		}
		if len(values) > 0 {
			coverage.Start = values[0]
			coverage.End = values[len(values)-1]
		}
		return coverage, entry
	}

	startRaw := nav.ChildText(timeRange, "StartPeriod")
	endRaw := nav.ChildText(timeRange, "EndPeriod")
	coverage := &models.TimeAvailability{
		Start:  startRaw,
		End:    endRaw,
		Format: models.TimeFormatDate,
		// A range whose bounds cannot both be placed on a calendar still
		// covers at least the one stated period.
		TotalPeriods: 1,
	}

	coverage.StartDate = parseDateBound(startRaw, warnings)
	coverage.EndDate = parseDateBound(endRaw, warnings)
	if coverage.StartDate != nil && coverage.EndDate != nil {
		coverage.TotalPeriods = coverage.EndDate.Year() - coverage.StartDate.Year() + 1
	}

	entry.TotalCount = coverage.TotalPeriods
	return coverage, entry
}

// parseDateBound parses the first 10 characters of a period bound as an ISO
// calendar date when they look like one; otherwise the raw string stands.
func parseDateBound(raw string, warnings *Warnings) *time.Time {
	if raw == "" {
		return nil
	}
	if !isoDatePrefix.MatchString(raw) {
		warnings.Addf("time bound %q is not an ISO calendar date; keeping the raw string", raw)
		return nil
	}
	parsed, err := time.Parse("2006-01-02", raw[:10])
	if err != nil {
		warnings.Addf("time bound %q failed to parse as a date; keeping the raw string", raw)
		return nil
	}
	return &parsed
}

func distinctSortedValues(nav *Navigator, keyValue *etree.Element) []string {
	seen := make(map[string]bool)
	var values []string
	for _, valueEl := range nav.FindAll(keyValue, "Value") {
		v := strings.TrimSpace(valueEl.Text())
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
