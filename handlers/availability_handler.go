// handlers/availability_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gewnthar/sdmxmeta/models"
	"github.com/gewnthar/sdmxmeta/services"
	"github.com/gewnthar/sdmxmeta/utils"
)

// ExtractAvailabilityHandler handles POST /api/availability/extract.
// Body: {"source": "<inline XML or URL>", "cache": true|false}
func ExtractAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req models.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}
	if req.Source == "" {
		respondWithError(w, http.StatusBadRequest, "Field 'source' is required (inline XML or URL)")
		return
	}

	constraint, err := services.ExtractAvailability(req.Source, req.Cache)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, constraint)
}

// CachedAvailabilityHandler handles GET /api/availability/cached?flow=AGENCY,FLOW_ID,VERSION.
// Serves only what the cache holds; extraction requires the extract endpoint.
func CachedAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	agencyID, flowID, version, err := utils.ParseFlowRef(r.URL.Query().Get("flow"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid 'flow' parameter: "+err.Error())
		return
	}

	constraint, err := services.GetOrExtractAvailability(agencyID, flowID, version, "")
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, constraint)
}

// AvailableValuesHandler handles POST /api/availability/values?dimension=GEO_PICT.
// Returns the published values for one dimension of the supplied constraint
// document, or the time coverage when the dimension is the time dimension.
func AvailableValuesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	dimensionID := r.URL.Query().Get("dimension")
	if dimensionID == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'dimension' is required")
		return
	}

	var req models.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}
	if req.Source == "" {
		respondWithError(w, http.StatusBadRequest, "Field 'source' is required (inline XML or URL)")
		return
	}

	constraint, err := services.ExtractAvailability(req.Source, false)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	payload := map[string]interface{}{
		"dimension_id":     dimensionID,
		"available_values": constraint.AvailableValues(dimensionID),
	}
	if dimensionID == "TIME_PERIOD" && constraint.TimeCoverage != nil {
		payload["time_coverage"] = constraint.TimeCoverage
	}
	respondWithJSON(w, http.StatusOK, payload)
}
