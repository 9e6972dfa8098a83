// Package validation contains the logic for validating
// request data.
//
// Raw JSON bodies are decoded into an untyped Payload, then read field by
// field into typed records. Every missing or mistyped field is collected
// into FieldErrors, a field -> messages mapping the client can understand.
// Rules that only make sense on an already typed record (such as minimum
// lengths) are expressed as `validate` struct tags and enforced by the
// go-playground validator.
package validation

import (
	"encoding/json"
	"io"
	"maps"
	"slices"
	"strings"
)

// Messages reported per field.
const (
	MsgRequired     = "Missing data for required field."
	MsgNull         = "Field may not be null."
	MsgInvalidInput = "Invalid input type."
	MsgString       = "Not a valid string."
	MsgInteger      = "Not a valid integer."
	MsgDate         = "Not a valid date."
)

// SchemaField is the key used for errors about the payload as a whole.
const SchemaField = "_schema"

// Payload is a raw, untyped request body.
type Payload map[string]any

// FieldErrors maps a field name to every message reported for it.
type FieldErrors map[string][]string

// Add records a message for field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Has reports whether field already has at least one message.
func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

// Error lists the failing fields in a stable order.
func (fe FieldErrors) Error() string {
	return "validation failed: " + strings.Join(slices.Sorted(maps.Keys(fe)), ", ")
}

// DecodePayload reads a JSON object from r.
//
// Numbers are kept as json.Number so integers are not silently rounded
// through float64. Anything that is not a single JSON object (empty body,
// malformed JSON, arrays, scalars) fails with a _schema error.
func DecodePayload(r io.Reader) (Payload, FieldErrors) {
	invalid := FieldErrors{SchemaField: {MsgInvalidInput}}
	if r == nil {
		return nil, invalid
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, invalid
	}
	// Trailing data after the object is rejected too.
	if _, err := dec.Token(); err != io.EOF {
		return nil, invalid
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, invalid
	}
	return Payload(obj), nil
}
