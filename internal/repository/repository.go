package repository

import "encoding/json"

// encodeJSON serializes list/map columns stored as JSON text.
// Encoding of the domain's own types cannot fail.
func encodeJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// decodeStrings parses a JSON string-array column
func decodeStrings(s string) []string {
	if s == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return []string{}
	}
	return out
}
