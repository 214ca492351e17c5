// utils/flowref.go
package utils

import (
	"fmt"
	"strings"
)

// ParseFlowRef splits an SDMX REST flow reference of the form
// "AGENCY,FLOW_ID,VERSION" (e.g. "SPC,DF_BP50,1.0"). A bare flow id is
// accepted too, with agency defaulting to "all" and version to "latest",
// matching SDMX REST semantics.
func ParseFlowRef(ref string) (agencyID, flowID, version string, err error) {
	parts := strings.Split(strings.TrimSpace(ref), ",")
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return "", "", "", fmt.Errorf("empty flow reference")
		}
		return "all", strings.ToUpper(parts[0]), "latest", nil
	case 3:
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return "", "", "", fmt.Errorf("flow reference %q has empty components", ref)
		}
		return strings.ToUpper(parts[0]), strings.ToUpper(parts[1]), parts[2], nil
	default:
		return "", "", "", fmt.Errorf("flow reference %q is not of the form AGENCY,FLOW_ID,VERSION", ref)
	}
}
