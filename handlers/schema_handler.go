// handlers/schema_handler.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gewnthar/sdmxmeta/models"
	"github.com/gewnthar/sdmxmeta/services"
	"github.com/gewnthar/sdmxmeta/utils"
)

// Helper to respond with JSON
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshalling JSON response: %v", err)
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper to respond with an error
func respondWithError(w http.ResponseWriter, code int, message string) {
	log.Printf("API Error %d: %s", code, message)
	respondWithJSON(w, code, map[string]string{"error": message})
}

// schemaResponse bundles the extracted schema with its derived artifacts so
// query builders get everything in one call.
type schemaResponse struct {
	Schema          *models.DataflowSchema        `json:"schema"`
	RequiredColumns []string                      `json:"required_columns"`
	OptionalColumns []string                      `json:"optional_columns"`
	CodelistColumns map[string]models.CodelistRef `json:"codelist_columns"`
	DimensionOrder  []string                      `json:"dimension_order"`
}

func buildSchemaResponse(schema *models.DataflowSchema) schemaResponse {
	return schemaResponse{
		Schema:          schema,
		RequiredColumns: schema.RequiredColumns(),
		OptionalColumns: schema.OptionalColumns(),
		CodelistColumns: schema.CodelistColumns(),
		DimensionOrder:  schema.DimensionOrder(),
	}
}

// ExtractSchemaHandler handles POST /api/schemas/extract.
// Body: {"source": "<inline XML or URL>", "cache": true|false}
func ExtractSchemaHandler(w http.ResponseWriter, r *http.Request) {
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

	schema, err := services.ExtractSchema(req.Source, req.Cache)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, buildSchemaResponse(schema))
}

// CachedSchemaHandler handles GET /api/schemas/cached?flow=AGENCY,FLOW_ID,VERSION.
// Serves only what the cache holds; extraction requires the extract endpoint.
func CachedSchemaHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	agencyID, flowID, version, err := utils.ParseFlowRef(r.URL.Query().Get("flow"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid 'flow' parameter: "+err.Error())
		return
	}

	schema, err := services.GetOrExtractSchema(agencyID, flowID, version, "")
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, buildSchemaResponse(schema))
}

// ConstructKeyHandler handles POST /api/schemas/key.
// Body: {"source": "...", "filters": {"FREQ": "A", "GEO_PICT": "FJ"}}
func ConstructKeyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req models.ConstructKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}
	if req.Source == "" {
		respondWithError(w, http.StatusBadRequest, "Field 'source' is required (inline XML or URL)")
		return
	}

	schema, err := services.ExtractSchema(req.Source, false)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	key, err := services.ConstructSDMXKey(schema, req.Filters)
	if err != nil {
		// Unknown dimension names are a caller problem, not a server one.
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{
		"key":      key,
		"dataflow": schema.DataflowInfo.ID,
	})
}
