// models/api_models.go
package models

// ExtractRequest is the expected JSON body for the extract endpoints.
// Source is either inline SDMX-ML (starts with '<') or an HTTP(S) URL.
type ExtractRequest struct {
	Source string `json:"source"`
	Cache  bool   `json:"cache,omitempty"`
}

// ConstructKeyRequest is the expected JSON body for /api/schemas/key.
type ConstructKeyRequest struct {
	Source  string            `json:"source"`
	Filters map[string]string `json:"filters"`
}

// ReconcileRequest carries the two documents to reconcile.
type ReconcileRequest struct {
	SchemaSource       string `json:"schema_source"`
	AvailabilitySource string `json:"availability_source"`
}

// GapsRequest carries an availability document plus externally fetched
// expected values (e.g. full codelists) per dimension id.
type GapsRequest struct {
	AvailabilitySource string              `json:"availability_source"`
	Expected           map[string][]string `json:"expected"`
}
