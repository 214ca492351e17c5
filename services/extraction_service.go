// services/extraction_service.go
package services

import (
	"fmt"
	"log"

	"github.com/gewnthar/sdmxmeta/config"
	"github.com/gewnthar/sdmxmeta/database"
	"github.com/gewnthar/sdmxmeta/models"
	"github.com/gewnthar/sdmxmeta/sdmx"
)

// InitCacheInventory logs what the cache currently holds. Called once at
// startup so operators can tell a cold cache from a broken one.
func InitCacheInventory() {
	schemas, err := database.CountDataflowSchemas()
	if err != nil {
		log.Printf("ERROR Service: Failed to count cached dataflow schemas: %v\n", err)
	} else {
		log.Printf("Service: Cache holds %d dataflow schema(s).\n", schemas)
	}

	constraints, err := database.CountAvailabilityConstraints()
	if err != nil {
		log.Printf("ERROR Service: Failed to count cached availability constraints: %v\n", err)
	} else {
		log.Printf("Service: Cache holds %d availability constraint(s).\n", constraints)
	}
}

// ExtractSchema resolves a source (inline XML or URL), extracts the dataflow
// schema, logs any degraded-data warnings, and optionally caches the result.
// Cache failures never fail the extraction; the caller still gets the schema.
func ExtractSchema(source string, cache bool) (*models.DataflowSchema, error) {
	data, err := sdmx.ResolveDocument(source, config.AppConfig.SDMX.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve structure document: %w", err)
	}

	schema, warnings, err := sdmx.ExtractDataflowSchema(data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract dataflow schema: %w", err)
	}
	for _, warning := range warnings {
		log.Printf("WARN Service: Schema extraction (%s): %s\n", schema.DataflowInfo.ID, warning)
	}

	if cache {
		if err := database.SaveDataflowSchema(schema); err != nil {
			log.Printf("ERROR Service: Failed to cache schema %s/%s/%s: %v\n",
				schema.DataflowInfo.AgencyID, schema.DataflowInfo.ID, schema.DataflowInfo.Version, err)
		}
	}
	return schema, nil
}

// ExtractAvailability resolves a source and extracts the availability
// constraint, with the same warning and caching behavior as ExtractSchema.
func ExtractAvailability(source string, cache bool) (*models.AvailabilityConstraint, error) {
	data, err := sdmx.ResolveDocument(source, config.AppConfig.SDMX.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve availability document: %w", err)
	}

	constraint, warnings, err := sdmx.ExtractAvailability(data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract availability constraint: %w", err)
	}
	for _, warning := range warnings {
		log.Printf("WARN Service: Availability extraction (%s): %s\n", constraint.ConstraintID, warning)
	}

	if cache {
		if err := database.SaveAvailabilityConstraint(constraint); err != nil {
			log.Printf("ERROR Service: Failed to cache constraint %s for dataflow %s: %v\n",
				constraint.ConstraintID, constraint.DataflowRef.ID, err)
		}
	}
	return constraint, nil
}

// GetOrExtractSchema serves a schema from the cache when present, otherwise
// extracts from source (and caches the result). An empty source means
// cache-only.
func GetOrExtractSchema(agencyID, dataflowID, version, source string) (*models.DataflowSchema, error) {
	cached, err := database.GetDataflowSchema(agencyID, dataflowID, version)
	if err != nil {
		log.Printf("WARN Service: Cache lookup failed for schema %s/%s/%s: %v\n", agencyID, dataflowID, version, err)
	}
	if cached != nil {
		return cached, nil
	}
	if source == "" {
		return nil, fmt.Errorf("schema %s/%s/%s is not cached and no source was provided", agencyID, dataflowID, version)
	}
	return ExtractSchema(source, true)
}

// GetOrExtractAvailability serves an availability constraint from the cache
// when present, otherwise extracts from source (and caches the result). An
// empty source means cache-only.
func GetOrExtractAvailability(agencyID, dataflowID, version, source string) (*models.AvailabilityConstraint, error) {
	cached, err := database.GetAvailabilityConstraint(agencyID, dataflowID, version)
	if err != nil {
		log.Printf("WARN Service: Cache lookup failed for constraint %s/%s/%s: %v\n", agencyID, dataflowID, version, err)
	}
	if cached != nil {
		return cached, nil
	}
	if source == "" {
		return nil, fmt.Errorf("availability for %s/%s/%s is not cached and no source was provided", agencyID, dataflowID, version)
	}
	return ExtractAvailability(source, true)
}

// Reconcile extracts both documents and compares them.
func Reconcile(schemaSource, availabilitySource string) (*models.ComparisonReport, error) {
	schema, err := ExtractSchema(schemaSource, false)
	if err != nil {
		return nil, err
	}
	availability, err := ExtractAvailability(availabilitySource, false)
	if err != nil {
		return nil, err
	}
	return CompareSchemaAvailability(schema, availability), nil
}
