// database/schema_store.go
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gewnthar/sdmxmeta/models"
)

// SaveDataflowSchema upserts an extracted schema into the cache, keyed by
// (agency_id, dataflow_id, version). The whole value object is stored as a
// JSON blob: the schema is immutable once extracted, so there is nothing to
// update column-by-column.
func SaveDataflowSchema(schema *models.DataflowSchema) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	blob, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("failed to marshal schema %s: %w", schema.DataflowInfo.ID, err)
	}

	query := `
		INSERT INTO dataflow_schemas (
			agency_id, dataflow_id, version, dsd_id, schema_json, updated_at
		) VALUES (?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			dsd_id = VALUES(dsd_id),
			schema_json = VALUES(schema_json),
			updated_at = NOW()
	`

	_, err = DB.Exec(query,
		schema.DataflowInfo.AgencyID,
		schema.DataflowInfo.ID,
		schema.DataflowInfo.Version,
		schema.DataflowInfo.DSDID,
		blob,
	)
	if err != nil {
		log.Printf("ERROR Database: Failed to save schema for dataflow '%s': %v", schema.DataflowInfo.ID, err)
		return fmt.Errorf("failed to save schema for dataflow %s: %w", schema.DataflowInfo.ID, err)
	}

	log.Printf("Database: Cached schema for dataflow %s/%s/%s (DSD: %s)\n",
		schema.DataflowInfo.AgencyID, schema.DataflowInfo.ID, schema.DataflowInfo.Version, schema.DataflowInfo.DSDID)
	return nil
}

// GetDataflowSchema returns the cached schema for the given identity, or
// (nil, nil) when nothing is cached.
func GetDataflowSchema(agencyID, dataflowID, version string) (*models.DataflowSchema, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	var blob []byte
	err := DB.QueryRow(`
		SELECT schema_json FROM dataflow_schemas
		WHERE agency_id = ? AND dataflow_id = ? AND version = ?
	`, agencyID, dataflowID, version).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cached schema %s/%s/%s: %w", agencyID, dataflowID, version, err)
	}

	var schema models.DataflowSchema
	if err := json.Unmarshal(blob, &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached schema %s/%s/%s: %w", agencyID, dataflowID, version, err)
	}
	return &schema, nil
}

// CountDataflowSchemas reports how many schemas the cache holds.
func CountDataflowSchemas() (int, error) {
	if DB == nil {
		return 0, fmt.Errorf("database connection is not initialized")
	}
	var count int
	if err := DB.QueryRow(`SELECT COUNT(*) FROM dataflow_schemas`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cached schemas: %w", err)
	}
	return count, nil
}
