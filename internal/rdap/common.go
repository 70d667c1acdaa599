// Package rdap defines the RDAP response document model and the
// content-based classifier that turns a raw JSON body into one of a
// closed set of typed records.
//
// RDAP responses are single untagged JSON objects; nothing in the HTTP
// layer says which record shape a body carries. The classifier in
// decode.go inspects discriminating top-level fields (errorCode, the
// search-result container keys, objectClassName) and then decodes the
// body exactly once into the matching type.
//
// Structures follow RFC 9083 (formerly RFC 7483). vCard payloads are
// carried verbatim; sub-parsing them is a renderer concern.
package rdap

import "encoding/json"

// Link points at a related resource.
// https://www.rfc-editor.org/rfc/rfc9083#section-4.2
type Link struct {
	Value    string   `json:"value,omitempty"`
	Rel      string   `json:"rel,omitempty"`
	Href     string   `json:"href"`
	HrefLang []string `json:"hreflang,omitempty"`
	Title    string   `json:"title,omitempty"`
	Media    string   `json:"media,omitempty"`
	Type     string   `json:"type,omitempty"`
}

// Notice carries information about the response as a whole.
// https://www.rfc-editor.org/rfc/rfc9083#section-4.3
type Notice struct {
	Title       string   `json:"title,omitempty"`
	Type        string   `json:"type,omitempty"`
	Description []string `json:"description,omitempty"`
	Links       []Link   `json:"links,omitempty"`
}

// Remark carries information about the containing object.
// Same wire shape as Notice.
type Remark = Notice

// Event records something that happened (or will happen) to an object.
// https://www.rfc-editor.org/rfc/rfc9083#section-4.5
type Event struct {
	Action string `json:"eventAction"`
	Actor  string `json:"eventActor,omitempty"`
	Date   string `json:"eventDate"`
	Links  []Link `json:"links,omitempty"`
}

// PublicID maps a public identifier to an object class.
// https://www.rfc-editor.org/rfc/rfc9083#section-4.8
type PublicID struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// Common holds fields shared by every top-level response document.
type Common struct {
	Conformance []string `json:"rdapConformance,omitempty"`
	Notices     []Notice `json:"notices,omitempty"`
	Lang        string   `json:"lang,omitempty"`
}

// VCard is an unparsed jCard payload (RFC 7095 vcardArray).
type VCard = json.RawMessage
