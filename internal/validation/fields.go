package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only accepted date format (ISO 8601 calendar date).
const DateLayout = "2006-01-02"

// Fields reads typed values out of a Payload, collecting an error for
// every field that is missing, null, or of the wrong type.
//
// Keys that are never read are ignored, which is how unknown and
// system-assigned fields are dropped.
type Fields struct {
	payload Payload
	errs    FieldErrors
}

// NewFields starts reading p.
func NewFields(p Payload) *Fields {
	return &Fields{payload: p, errs: FieldErrors{}}
}

// lookup returns the raw value of a required, non-null field.
func (f *Fields) lookup(name string) (any, bool) {
	v, ok := f.payload[name]
	if !ok {
		f.errs.Add(name, MsgRequired)
		return nil, false
	}
	if v == nil {
		f.errs.Add(name, MsgNull)
		return nil, false
	}
	return v, true
}

// String reads a required text field.
func (f *Fields) String(name string) string {
	v, ok := f.lookup(name)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		f.errs.Add(name, MsgString)
		return ""
	}
	return s
}

// Int reads a required integer field. JSON integers and strings holding
// an integer are accepted; fractions, booleans and other types are not.
func (f *Fields) Int(name string) int64 {
	v, ok := f.lookup(name)
	if !ok {
		return 0
	}

	var n int64
	var err error
	switch t := v.(type) {
	case json.Number:
		n, err = parseInt(t.String())
	case string:
		n, err = parseInt(strings.TrimSpace(t))
	case float64:
		// Payloads decoded without UseNumber.
		n, err = floatToInt(t)
	case int:
		n = int64(t)
	case int64:
		n = t
	default:
		err = strconv.ErrSyntax
	}
	if err != nil {
		f.errs.Add(name, MsgInteger)
		return 0
	}
	return n
}

// parseInt accepts plain integers and integral exponent/decimal forms
// such as "135.0" or "1e2".
func parseInt(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, strconv.ErrSyntax
	}
	return floatToInt(fl)
}

// floatToInt converts an integral float inside [-2^63, 2^63). The upper
// bound is exclusive because float64(math.MaxInt64) rounds up to 2^63.
func floatToInt(fl float64) (int64, error) {
	if fl != math.Trunc(fl) || fl >= 0x1p63 || fl < -0x1p63 {
		return 0, strconv.ErrSyntax
	}
	return int64(fl), nil
}

// Date reads a required calendar date in YYYY-MM-DD form.
func (f *Fields) Date(name string) time.Time {
	v, ok := f.lookup(name)
	if !ok {
		return time.Time{}
	}
	s, ok := v.(string)
	if !ok {
		f.errs.Add(name, MsgDate)
		return time.Time{}
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		f.errs.Add(name, MsgDate)
		return time.Time{}
	}
	return d
}

// Check runs the struct tag rules on record, skipping fields that
// already failed to read.
func (f *Fields) Check(record any) {
	for field, messages := range Struct(record) {
		if f.errs.Has(field) {
			continue
		}
		for _, msg := range messages {
			f.errs.Add(field, msg)
		}
	}
}

// Errors returns the collected errors, or nil when every field was valid.
func (f *Fields) Errors() FieldErrors {
	if len(f.errs) == 0 {
		return nil
	}
	return f.errs
}
