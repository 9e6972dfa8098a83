// Package model defines the records stored by the service and the
// parsers that turn a raw request payload into a writable record.
//
// Struct field order is the JSON field order clients see.
package model
