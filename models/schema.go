// models/schema.go
package models

import (
	"sort"
)

// Sentinel used when an optional reference (concept, codelist, name) is
// absent from the source document. Absence is data, not an error.
const Unknown = "unknown"

// Attribute assignment statuses per the SDMX information model.
const (
	AssignmentMandatory   = "Mandatory"
	AssignmentConditional = "Conditional"
)

// Attribute attachment levels, classified from AttributeRelationship.
const (
	RelationshipDataset     = "Dataset"
	RelationshipObservation = "Observation"
	RelationshipDimension   = "Dimension"
)

// DataflowInfo identifies one dataflow version and its backing DSD.
type DataflowInfo struct {
	AgencyID    string `json:"agency_id"`
	ID          string `json:"id"`
	Version     string `json:"version"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	DSDID       string `json:"dsd_id"`
}

// Dimension is one classificatory axis of a dataflow. Position is 1-based and
// defines SDMX key order. A dimension is either enumerated (CodelistID set)
// or free-form (DataType set); both may be Unknown when the DSD is silent.
type Dimension struct {
	ID              string `json:"id"`
	Position        int    `json:"position"`
	ConceptID       string `json:"concept_id"`
	ConceptScheme   string `json:"concept_scheme"`
	CodelistID      string `json:"codelist_id,omitempty"`
	CodelistAgency  string `json:"codelist_agency,omitempty"`
	CodelistVersion string `json:"codelist_version,omitempty"`
	DataType        string `json:"data_type,omitempty"`
}

// Attribute is a metadata field attached at dataset, dimension, or
// observation level.
type Attribute struct {
	ID               string `json:"id"`
	AssignmentStatus string `json:"assignment_status"`
	ConceptID        string `json:"concept_id"`
	CodelistID       string `json:"codelist_id,omitempty"`
	CodelistAgency   string `json:"codelist_agency,omitempty"`
	CodelistVersion  string `json:"codelist_version,omitempty"`
	Relationship     string `json:"relationship"`
}

// Measure is the observed value field (normally exactly one primary measure).
type Measure struct {
	ID        string `json:"id"`
	ConceptID string `json:"concept_id"`
	DataType  string `json:"data_type"`
}

// DataflowSchema is the theoretical schema of one dataflow: what values each
// column may legally take. Built once per extraction and never mutated.
// The time dimension is kept out of Dimensions because it has its own
// formatting rules (periods, not codes).
type DataflowSchema struct {
	DataflowInfo  DataflowInfo `json:"dataflow_info"`
	Dimensions    []Dimension  `json:"dimensions"`
	TimeDimension *Dimension   `json:"time_dimension,omitempty"`
	Attributes    []Attribute  `json:"attributes"`
	Measures      []Measure    `json:"measures"`
}

// CodelistRef identifies an external codelist bound to a dimension or attribute.
type CodelistRef struct {
	CodelistID string `json:"codelist_id"`
	AgencyID   string `json:"agency_id"`
	Version    string `json:"version"`
}

// RequiredColumns returns every column a complete record must carry:
// all dimensions, the time dimension if present, all measures, and every
// attribute whose assignment status is Mandatory.
func (s *DataflowSchema) RequiredColumns() []string {
	var cols []string
	for _, dim := range s.Dimensions {
		cols = append(cols, dim.ID)
	}
	if s.TimeDimension != nil {
		cols = append(cols, s.TimeDimension.ID)
	}
	for _, m := range s.Measures {
		cols = append(cols, m.ID)
	}
	for _, attr := range s.Attributes {
		if attr.AssignmentStatus == AssignmentMandatory {
			cols = append(cols, attr.ID)
		}
	}
	return cols
}

// OptionalColumns returns the ids of Conditional attributes.
func (s *DataflowSchema) OptionalColumns() []string {
	var cols []string
	for _, attr := range s.Attributes {
		if attr.AssignmentStatus == AssignmentConditional {
			cols = append(cols, attr.ID)
		}
	}
	return cols
}

// CodelistColumns maps every enumerated dimension or attribute id to its
// codelist reference.
func (s *DataflowSchema) CodelistColumns() map[string]CodelistRef {
	refs := make(map[string]CodelistRef)
	for _, dim := range s.Dimensions {
		if dim.CodelistID != "" {
			refs[dim.ID] = CodelistRef{CodelistID: dim.CodelistID, AgencyID: dim.CodelistAgency, Version: dim.CodelistVersion}
		}
	}
	if s.TimeDimension != nil && s.TimeDimension.CodelistID != "" {
		refs[s.TimeDimension.ID] = CodelistRef{
			CodelistID: s.TimeDimension.CodelistID,
			AgencyID:   s.TimeDimension.CodelistAgency,
			Version:    s.TimeDimension.CodelistVersion,
		}
	}
	for _, attr := range s.Attributes {
		if attr.CodelistID != "" {
			refs[attr.ID] = CodelistRef{CodelistID: attr.CodelistID, AgencyID: attr.CodelistAgency, Version: attr.CodelistVersion}
		}
	}
	return refs
}

// DimensionOrder returns all dimension ids sorted by ascending position.
// The time dimension slots in at its own position when it has one, otherwise
// it goes last. This order governs SDMX key construction, so it must depend
// only on position attributes, never on document traversal order.
func (s *DataflowSchema) DimensionOrder() []string {
	ordered := make([]Dimension, len(s.Dimensions))
	copy(ordered, s.Dimensions)
	if s.TimeDimension != nil && s.TimeDimension.Position > 0 {
		ordered = append(ordered, *s.TimeDimension)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	ids := make([]string, 0, len(ordered)+1)
	for _, dim := range ordered {
		ids = append(ids, dim.ID)
	}
	if s.TimeDimension != nil && s.TimeDimension.Position <= 0 {
		ids = append(ids, s.TimeDimension.ID)
	}
	return ids
}
