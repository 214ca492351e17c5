// database/availability_store.go
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gewnthar/sdmxmeta/models"
)

// SaveAvailabilityConstraint upserts an extracted availability constraint,
// keyed by the dataflow it describes. Same JSON-blob strategy as the schema
// store: constraints are immutable snapshots, re-extraction replaces them
// wholesale.
func SaveAvailabilityConstraint(constraint *models.AvailabilityConstraint) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	blob, err := json.Marshal(constraint)
	if err != nil {
		return fmt.Errorf("failed to marshal constraint %s: %w", constraint.ConstraintID, err)
	}

	query := `
		INSERT INTO availability_constraints (
			agency_id, dataflow_id, dataflow_version, constraint_id,
			total_observations, constraint_json, extracted_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			constraint_id = VALUES(constraint_id),
			total_observations = VALUES(total_observations),
			constraint_json = VALUES(constraint_json),
			extracted_at = VALUES(extracted_at),
			updated_at = NOW()
	`

	_, err = DB.Exec(query,
		constraint.DataflowRef.AgencyID,
		constraint.DataflowRef.ID,
		constraint.DataflowRef.Version,
		constraint.ConstraintID,
		constraint.TotalObservations,
		blob,
		constraint.ExtractedAt,
	)
	if err != nil {
		log.Printf("ERROR Database: Failed to save availability constraint '%s': %v", constraint.ConstraintID, err)
		return fmt.Errorf("failed to save availability constraint %s: %w", constraint.ConstraintID, err)
	}

	log.Printf("Database: Cached availability constraint %s for dataflow %s/%s (%d observations)\n",
		constraint.ConstraintID, constraint.DataflowRef.AgencyID, constraint.DataflowRef.ID, constraint.TotalObservations)
	return nil
}

// GetAvailabilityConstraint returns the cached constraint for a dataflow, or
// (nil, nil) when nothing is cached.
func GetAvailabilityConstraint(agencyID, dataflowID, version string) (*models.AvailabilityConstraint, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	var blob []byte
	err := DB.QueryRow(`
		SELECT constraint_json FROM availability_constraints
		WHERE agency_id = ? AND dataflow_id = ? AND dataflow_version = ?
	`, agencyID, dataflowID, version).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cached constraint for %s/%s/%s: %w", agencyID, dataflowID, version, err)
	}

	var constraint models.AvailabilityConstraint
	if err := json.Unmarshal(blob, &constraint); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached constraint for %s/%s/%s: %w", agencyID, dataflowID, version, err)
	}
	return &constraint, nil
}

// CountAvailabilityConstraints reports how many constraints the cache holds.
func CountAvailabilityConstraints() (int, error) {
	if DB == nil {
		return 0, fmt.Errorf("database connection is not initialized")
	}
	var count int
	if err := DB.QueryRow(`SELECT COUNT(*) FROM availability_constraints`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cached constraints: %w", err)
	}
	return count, nil
}
