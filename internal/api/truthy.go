package api

import (
	"encoding/json"
	"strings"
)

// Truthy interprets a loosely-typed boolean field. Booleans pass through;
// strings accept the literal set "true", "1", "yes", "on" (any case) as
// true and anything else as false; numbers are true when non-zero. The
// literal set is fixed for client compatibility.
func Truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "yes", "on":
			return true
		}
		return false
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0
	}

	return false
}
