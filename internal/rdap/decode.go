package rdap

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrNotObject is returned when a response body is valid JSON but not a
// JSON object, so it cannot be any record variant.
var ErrNotObject = errors.New("rdap: response body is not a JSON object")

// Decode classifies a raw response body and decodes it into the
// matching record type.
//
// Inspection order (first match wins):
//  1. errorCode present            -> ErrorResponse
//  2. a search container present   -> the matching search results type
//  3. objectClassName present      -> dispatch on its value
//  4. otherwise                    -> Help
//
// The body is decoded exactly once, after the variant is known.
func Decode(body []byte) (Record, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("rdap: invalid JSON: %w", firstSyntaxError(body))
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, ErrNotObject
	}

	switch {
	case root.Get("errorCode").Exists():
		return decodeInto(body, &ErrorResponse{})
	case root.Get("domainSearchResults").Exists():
		return decodeInto(body, &DomainSearchResults{})
	case root.Get("entitySearchResults").Exists():
		return decodeInto(body, &EntitySearchResults{})
	case root.Get("nameserverSearchResults").Exists():
		return decodeInto(body, &NameserverSearchResults{})
	}

	switch root.Get("objectClassName").String() {
	case "domain":
		return decodeInto(body, &Domain{})
	case "entity":
		return decodeInto(body, &Entity{})
	case "nameserver":
		return decodeInto(body, &Nameserver{})
	case "autnum":
		return decodeInto(body, &Autnum{})
	case "ip network":
		return decodeInto(body, &IPNetwork{})
	}

	return decodeInto(body, &Help{})
}

func decodeInto[R Record](body []byte, rec R) (Record, error) {
	if err := json.Unmarshal(body, rec); err != nil {
		return nil, fmt.Errorf("rdap: decoding %s record: %w", rec.RecordClass(), err)
	}
	return rec, nil
}

// firstSyntaxError re-runs the stdlib decoder to get a positional error
// for diagnostics. Only called on bodies gjson already rejected.
func firstSyntaxError(body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return err
	}
	return errors.New("malformed document")
}
