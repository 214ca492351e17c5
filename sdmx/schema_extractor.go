// sdmx/schema_extractor.go
package sdmx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/gewnthar/sdmxmeta/models"
)

// ExtractDataflowSchema parses an SDMX-ML structure document containing one
// Dataflow and its referenced DataStructure, and returns the normalized
// schema. Missing Dataflow or a dangling DSD reference is fatal; missing
// optional sub-elements (names, codelist refs, concept refs) degrade to the
// Unknown sentinel with a warning instead of failing the call.
func ExtractDataflowSchema(xmlData []byte) (*models.DataflowSchema, Warnings, error) {
	return extractDataflowSchema(defaultNavigator, xmlData)
}

func extractDataflowSchema(nav *Navigator, xmlData []byte) (*models.DataflowSchema, Warnings, error) {
	var warnings Warnings

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlData); err != nil {
		return nil, nil, fmt.Errorf("failed to parse structure document: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, nil, fmt.Errorf("structure document has no root element")
	}

	dataflow := nav.FindFirst(root, "Dataflow")
	if dataflow == nil {
		return nil, nil, fmt.Errorf("no Dataflow element found in document (top-level elements: %s)", sampleElementNames(root))
	}

	info := models.DataflowInfo{
		AgencyID:    AttrDefault(dataflow, "agencyID", models.Unknown),
		ID:          AttrDefault(dataflow, "id", models.Unknown),
		Version:     AttrDefault(dataflow, "version", models.Unknown),
		Name:        localizedText(nav, dataflow, "Name"),
		Description: localizedText(nav, dataflow, "Description"),
	}
	if info.Name == "" {
		info.Name = models.Unknown
	}

	dsd, err := locateDataStructure(nav, root, dataflow, &info, &warnings)
	if err != nil {
		return nil, nil, err
	}

	// Concept ids defined in this document's concept schemes, if any. A
	// reference that resolves must point at one of these; a dangling
	// reference degrades the concept metadata to Unknown.
	definedConcepts := make(map[string]bool)
	for _, concept := range nav.FindAll(root, "ConceptScheme/Concept") {
		if id, ok := Attr(concept, "id"); ok {
			definedConcepts[id] = true
		}
	}

	schema := &models.DataflowSchema{DataflowInfo: info}

	dimensionList := nav.FindFirst(dsd, "DimensionList")
	if dimensionList == nil {
		warnings.Addf("DSD %s has no DimensionList; schema will have no dimensions", info.DSDID)
	}
	for _, node := range nav.FindAll(dimensionList, "Dimension") {
		schema.Dimensions = append(schema.Dimensions, extractDimension(nav, node, definedConcepts, &warnings))
	}
	timeNodes := nav.FindAll(dimensionList, "TimeDimension")
	if len(timeNodes) > 1 {
		warnings.Addf("DSD %s declares %d TimeDimension elements; using the first", info.DSDID, len(timeNodes))
	}
	if len(timeNodes) > 0 {
		timeDim := extractDimension(nav, timeNodes[0], definedConcepts, &warnings)
		schema.TimeDimension = &timeDim
	}

	seenPositions := make(map[int]string)
	for _, dim := range schema.Dimensions {
		if prev, dup := seenPositions[dim.Position]; dup {
			warnings.Addf("dimensions %s and %s share position %d; key order is ambiguous", prev, dim.ID, dim.Position)
		}
		seenPositions[dim.Position] = dim.ID
	}

	for _, node := range nav.FindAll(dsd, "AttributeList/Attribute") {
		schema.Attributes = append(schema.Attributes, extractAttribute(nav, node, definedConcepts, &warnings))
	}

	for _, node := range nav.FindAll(dsd, "MeasureList/PrimaryMeasure") {
		measure := models.Measure{
			ID:        AttrDefault(node, "id", models.Unknown),
			ConceptID: conceptRef(nav, node, definedConcepts, &warnings).id,
			// SDMX primary measures are numeric by convention.
			DataType: "Double",
		}
		if textFormat := nav.FindFirst(node, "LocalRepresentation/TextFormat"); textFormat != nil {
			measure.DataType = AttrDefault(textFormat, "textType", "Double")
		}
		schema.Measures = append(schema.Measures, measure)
	}
	if len(schema.Measures) == 0 {
		warnings.Addf("DSD %s declares no PrimaryMeasure", info.DSDID)
	}

	return schema, warnings, nil
}

// locateDataStructure resolves the Dataflow's Structure/Ref to a DataStructure
// node in the same document. A dangling reference is fatal; a missing ref is
// tolerated only when the document carries exactly one DSD.
func locateDataStructure(nav *Navigator, root, dataflow *etree.Element, info *models.DataflowInfo, warnings *Warnings) (*etree.Element, error) {
	refID := ""
	if ref := nav.FindFirst(dataflow, "Structure/Ref"); ref != nil {
		refID = AttrDefault(ref, "id", "")
	}

	candidates := nav.FindAll(root, "DataStructure")
	if refID == "" {
		if len(candidates) == 1 {
			info.DSDID = AttrDefault(candidates[0], "id", models.Unknown)
			warnings.Addf("dataflow %s carries no Structure/Ref; using the document's only DataStructure %s", info.ID, info.DSDID)
			return candidates[0], nil
		}
		return nil, fmt.Errorf("dataflow %s does not reference a data structure and the document contains %d DataStructure elements", info.ID, len(candidates))
	}

	info.DSDID = refID
	for _, candidate := range candidates {
		if AttrDefault(candidate, "id", "") == refID {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("dataflow %s references data structure %q which is not present in the document", info.ID, refID)
}

func extractDimension(nav *Navigator, node *etree.Element, definedConcepts map[string]bool, warnings *Warnings) models.Dimension {
	dim := models.Dimension{
		ID: AttrDefault(node, "id", models.Unknown),
	}

	if posStr, ok := Attr(node, "position"); ok {
		pos, err := strconv.Atoi(posStr)
		if err != nil {
			warnings.Addf("dimension %s has non-integer position %q; treating as unpositioned", dim.ID, posStr)
		} else {
			dim.Position = pos
		}
	} else {
		warnings.Addf("dimension %s has no position attribute", dim.ID)
	}

	concept := conceptRef(nav, node, definedConcepts, warnings)
	dim.ConceptID = concept.id
	dim.ConceptScheme = concept.scheme

	if enum := nav.FindFirst(node, "LocalRepresentation/Enumeration/Ref"); enum != nil {
		dim.CodelistID = AttrDefault(enum, "id", models.Unknown)
		dim.CodelistAgency = AttrDefault(enum, "agencyID", models.Unknown)
		dim.CodelistVersion = AttrDefault(enum, "version", models.Unknown)
	} else if textFormat := nav.FindFirst(node, "LocalRepresentation/TextFormat"); textFormat != nil {
		dim.DataType = AttrDefault(textFormat, "textType", models.Unknown)
	}
	return dim
}

func extractAttribute(nav *Navigator, node *etree.Element, definedConcepts map[string]bool, warnings *Warnings) models.Attribute {
	attr := models.Attribute{
		ID: AttrDefault(node, "id", models.Unknown),
	}

	// SDMX convention: unspecified assignment status means mandatory. Some
	// providers may intend "unspecified" as distinct, so applying the
	// default is worth a note.
	if status, ok := Attr(node, "assignmentStatus"); ok {
		attr.AssignmentStatus = status
	} else {
		attr.AssignmentStatus = models.AssignmentMandatory
		warnings.Addf("attribute %s has no assignmentStatus; defaulting to Mandatory", attr.ID)
	}

	concept := conceptRef(nav, node, definedConcepts, warnings)
	attr.ConceptID = concept.id

	if enum := nav.FindFirst(node, "LocalRepresentation/Enumeration/Ref"); enum != nil {
		attr.CodelistID = AttrDefault(enum, "id", models.Unknown)
		attr.CodelistAgency = AttrDefault(enum, "agencyID", models.Unknown)
		attr.CodelistVersion = AttrDefault(enum, "version", models.Unknown)
	}

	attr.Relationship = models.RelationshipDataset
	if rel := nav.FindFirst(node, "AttributeRelationship"); rel != nil {
		if nav.FindFirst(rel, "PrimaryMeasure") != nil {
			attr.Relationship = models.RelationshipObservation
		} else if nav.FindFirst(rel, "Dimension") != nil {
			attr.Relationship = models.RelationshipDimension
		}
	}
	return attr
}

type conceptReference struct {
	id     string
	scheme string
}

func conceptRef(nav *Navigator, node *etree.Element, definedConcepts map[string]bool, warnings *Warnings) conceptReference {
	ref := nav.FindFirst(node, "ConceptIdentity/Ref")
	if ref == nil {
		return conceptReference{id: models.Unknown, scheme: models.Unknown}
	}
	id := AttrDefault(ref, "id", models.Unknown)
	scheme := AttrDefault(ref, "maintainableParentID", models.Unknown)
	if len(definedConcepts) > 0 && id != models.Unknown && !definedConcepts[id] {
		warnings.Addf("concept %s referenced by %s is not defined in the document's concept schemes", id, AttrDefault(node, "id", "?"))
		return conceptReference{id: models.Unknown, scheme: models.Unknown}
	}
	return conceptReference{id: id, scheme: scheme}
}

// localizedText picks the English variant of a localized child element when
// several language variants exist, else the first one.
func localizedText(nav *Navigator, scope *etree.Element, name string) string {
	nodes := nav.FindAll(scope, name)
	if len(nodes) == 0 {
		return ""
	}
	for _, node := range nodes {
		if AttrDefault(node, "lang", "") == "en" {
			return strings.TrimSpace(node.Text())
		}
	}
	return strings.TrimSpace(nodes[0].Text())
}

// sampleElementNames lists the root tag and a handful of its children, to
// make "element not found" errors diagnosable when a provider returns an
// unexpected payload.
func sampleElementNames(root *etree.Element) string {
	names := []string{root.Tag}
	for i, child := range root.ChildElements() {
		if i >= 5 {
			names = append(names, "...")
			break
		}
		names = append(names, child.Tag)
	}
	return strings.Join(names, ", ")
}
