// handlers/reconcile_handler.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gewnthar/sdmxmeta/models"
	"github.com/gewnthar/sdmxmeta/report"
	"github.com/gewnthar/sdmxmeta/services"
)

// ReconcileHandler handles POST /api/reconcile.
// Body: {"schema_source": "...", "availability_source": "..."}
// Add ?format=csv for a spreadsheet-friendly rendering of the report.
func ReconcileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req models.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}
	if req.SchemaSource == "" || req.AvailabilitySource == "" {
		respondWithError(w, http.StatusBadRequest, "Fields 'schema_source' and 'availability_source' are required")
		return
	}

	comparison, err := services.Reconcile(req.SchemaSource, req.AvailabilitySource)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		if err := report.WriteComparisonCSV(w, comparison); err != nil {
			log.Printf("ERROR Handler: Failed to write comparison CSV: %v", err)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, comparison)
}

// DataGapsHandler handles POST /api/reconcile/gaps.
// Body: {"availability_source": "...", "expected": {"GEO_PICT": ["FJ","TO",...]}}
// Dimensions with no gap are omitted from the result.
func DataGapsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req models.GapsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}
	if req.AvailabilitySource == "" {
		respondWithError(w, http.StatusBadRequest, "Field 'availability_source' is required")
		return
	}
	if len(req.Expected) == 0 {
		respondWithError(w, http.StatusBadRequest, "Field 'expected' must map at least one dimension to its expected values")
		return
	}

	constraint, err := services.ExtractAvailability(req.AvailabilitySource, false)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	gaps := services.FindDataGaps(constraint, req.Expected)

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		if err := report.WriteGapsCSV(w, gaps); err != nil {
			log.Printf("ERROR Handler: Failed to write gap CSV: %v", err)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"dataflow": constraint.DataflowRef.ID,
		"gaps":     gaps,
	})
}
