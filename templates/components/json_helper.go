package components

import (
	"encoding/json"
	"log"
)

// CSRFHeaderName is the header htmx requests carry the CSRF token in
const CSRFHeaderName = "X-CSRF-Token"

// JSON marshals an object to a JSON string, returning "{}" on error
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARNING] Error marshaling JSON: %v", err)
		return "{}"
	}
	return string(b)
}

// CSRFHeaders is the hx-headers value that attaches token to every htmx
// request below the element
func CSRFHeaders(token string) string {
	return JSON(map[string]string{CSRFHeaderName: token})
}
