package rdap

// Class identifies which record shape a response document carries.
type Class string

// The closed set of record classes a server can return.
const (
	ClassDomain           Class = "domain"
	ClassEntity           Class = "entity"
	ClassNameserver       Class = "nameserver"
	ClassAutnum           Class = "autnum"
	ClassIPNetwork        Class = "ip network"
	ClassError            Class = "error"
	ClassDomainSearch     Class = "domain-search"
	ClassEntitySearch     Class = "entity-search"
	ClassNameserverSearch Class = "nameserver-search"
	ClassHelp             Class = "help"
)

// Record is implemented by every top-level response document.
type Record interface {
	// RecordClass reports which variant this record is, so callers can
	// switch without reflection.
	RecordClass() Class
}

func (*Domain) RecordClass() Class     { return ClassDomain }
func (*Entity) RecordClass() Class     { return ClassEntity }
func (*Nameserver) RecordClass() Class { return ClassNameserver }
func (*Autnum) RecordClass() Class     { return ClassAutnum }
func (*IPNetwork) RecordClass() Class  { return ClassIPNetwork }

// ErrorResponse is a structured error document.
// https://www.rfc-editor.org/rfc/rfc9083#section-6
//
// Servers may return one with any HTTP status, including 200; the
// errorCode field is authoritative, not the transport status.
type ErrorResponse struct {
	Common
	ErrorCode   int      `json:"errorCode,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description []string `json:"description,omitempty"`
}

func (*ErrorResponse) RecordClass() Class { return ClassError }

// DomainSearchResults is the container returned by domains?... searches.
type DomainSearchResults struct {
	Common
	Domains []Domain `json:"domainSearchResults"`
}

func (*DomainSearchResults) RecordClass() Class { return ClassDomainSearch }

// EntitySearchResults is the container returned by entities?... searches.
type EntitySearchResults struct {
	Common
	Entities []Entity `json:"entitySearchResults"`
}

func (*EntitySearchResults) RecordClass() Class { return ClassEntitySearch }

// NameserverSearchResults is the container returned by nameservers?...
// searches.
type NameserverSearchResults struct {
	Common
	Nameservers []Nameserver `json:"nameserverSearchResults"`
}

func (*NameserverSearchResults) RecordClass() Class { return ClassNameserverSearch }

// Help is a help response, and the fallback for documents that carry
// none of the discriminating fields.
type Help struct {
	Common
}

func (*Help) RecordClass() Class { return ClassHelp }
