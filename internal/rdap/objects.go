package rdap

// Domain is a domain name registration.
// https://www.rfc-editor.org/rfc/rfc9083#section-5.3
type Domain struct {
	Common
	ObjectClassName string       `json:"objectClassName"`
	Handle          string       `json:"handle,omitempty"`
	LDHName         string       `json:"ldhName,omitempty"`
	UnicodeName     string       `json:"unicodeName,omitempty"`
	Variants        []Variant    `json:"variants,omitempty"`
	Nameservers     []Nameserver `json:"nameservers,omitempty"`
	SecureDNS       *SecureDNS   `json:"secureDNS,omitempty"`
	Entities        []Entity     `json:"entities,omitempty"`
	Status          []string     `json:"status,omitempty"`
	PublicIDs       []PublicID   `json:"publicIds,omitempty"`
	Remarks         []Remark     `json:"remarks,omitempty"`
	Links           []Link       `json:"links,omitempty"`
	Port43          string       `json:"port43,omitempty"`
	Events          []Event      `json:"events,omitempty"`
	Network         *IPNetwork   `json:"network,omitempty"`
}

// Variant describes IDN variants of a domain name.
type Variant struct {
	Relation     []string      `json:"relation,omitempty"`
	IDNTable     string        `json:"idnTable,omitempty"`
	VariantNames []VariantName `json:"variantNames,omitempty"`
}

// VariantName is a single variant form.
type VariantName struct {
	LDHName     string `json:"ldhName,omitempty"`
	UnicodeName string `json:"unicodeName,omitempty"`
}

// SecureDNS carries DNSSEC state for a domain.
type SecureDNS struct {
	ZoneSigned       *bool     `json:"zoneSigned,omitempty"`
	DelegationSigned *bool     `json:"delegationSigned,omitempty"`
	MaxSigLife       uint64    `json:"maxSigLife,omitempty"`
	DSData           []DSData  `json:"dsData,omitempty"`
	KeyData          []KeyData `json:"keyData,omitempty"`
}

// DSData is a DS record published for a signed delegation.
type DSData struct {
	KeyTag     uint64  `json:"keyTag,omitempty"`
	Algorithm  uint8   `json:"algorithm,omitempty"`
	Digest     string  `json:"digest,omitempty"`
	DigestType uint8   `json:"digestType,omitempty"`
	Events     []Event `json:"events,omitempty"`
	Links      []Link  `json:"links,omitempty"`
}

// KeyData is a DNSKEY published for a signed delegation.
type KeyData struct {
	Flags     uint16  `json:"flags,omitempty"`
	Protocol  uint8   `json:"protocol,omitempty"`
	Algorithm uint8   `json:"algorithm,omitempty"`
	PublicKey string  `json:"publicKey,omitempty"`
	Events    []Event `json:"events,omitempty"`
	Links     []Link  `json:"links,omitempty"`
}

// Entity is a person or organization attached to another object (or
// queried directly by handle).
// https://www.rfc-editor.org/rfc/rfc9083#section-5.1
type Entity struct {
	Common
	ObjectClassName string      `json:"objectClassName,omitempty"`
	Handle          string      `json:"handle,omitempty"`
	VCardArray      VCard       `json:"vcardArray,omitempty"`
	Roles           []string    `json:"roles,omitempty"`
	PublicIDs       []PublicID  `json:"publicIds,omitempty"`
	Entities        []Entity    `json:"entities,omitempty"`
	Remarks         []Remark    `json:"remarks,omitempty"`
	Links           []Link      `json:"links,omitempty"`
	Events          []Event     `json:"events,omitempty"`
	AsEventActor    []Event     `json:"asEventActor,omitempty"`
	Status          []string    `json:"status,omitempty"`
	Port43          string      `json:"port43,omitempty"`
	Networks        []IPNetwork `json:"networks,omitempty"`
	Autnums         []Autnum    `json:"autnums,omitempty"`
}

// HasRole reports whether the entity carries the given role
// (e.g. "registrar", "abuse").
func (e *Entity) HasRole(role string) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Nameserver is a nameserver registration.
// https://www.rfc-editor.org/rfc/rfc9083#section-5.2
type Nameserver struct {
	Common
	ObjectClassName string        `json:"objectClassName,omitempty"`
	Handle          string        `json:"handle,omitempty"`
	LDHName         string        `json:"ldhName,omitempty"`
	UnicodeName     string        `json:"unicodeName,omitempty"`
	IPAddresses     *IPAddressSet `json:"ipAddresses,omitempty"`
	Entities        []Entity      `json:"entities,omitempty"`
	Status          []string      `json:"status,omitempty"`
	Remarks         []Remark      `json:"remarks,omitempty"`
	Links           []Link        `json:"links,omitempty"`
	Port43          string        `json:"port43,omitempty"`
	Events          []Event       `json:"events,omitempty"`
}

// IPAddressSet lists the glue addresses of a nameserver.
type IPAddressSet struct {
	V4 []string `json:"v4,omitempty"`
	V6 []string `json:"v6,omitempty"`
}

// Autnum is an autonomous system number registration.
// https://www.rfc-editor.org/rfc/rfc9083#section-5.5
type Autnum struct {
	Common
	ObjectClassName string     `json:"objectClassName,omitempty"`
	Handle          string     `json:"handle,omitempty"`
	StartAutnum     uint32     `json:"startAutnum,omitempty"`
	EndAutnum       uint32     `json:"endAutnum,omitempty"`
	IPVersion       string     `json:"ipVersion,omitempty"`
	Name            string     `json:"name,omitempty"`
	Type            string     `json:"type,omitempty"`
	Status          []string   `json:"status,omitempty"`
	Country         string     `json:"country,omitempty"`
	Entities        []Entity   `json:"entities,omitempty"`
	Remarks         []Remark   `json:"remarks,omitempty"`
	Links           []Link     `json:"links,omitempty"`
	PublicIDs       []PublicID `json:"publicIds,omitempty"`
	Port43          string     `json:"port43,omitempty"`
	Events          []Event    `json:"events,omitempty"`
}

// IPNetwork is an IP network registration.
// https://www.rfc-editor.org/rfc/rfc9083#section-5.4
type IPNetwork struct {
	Common
	ObjectClassName string   `json:"objectClassName,omitempty"`
	Handle          string   `json:"handle,omitempty"`
	StartAddress    string   `json:"startAddress,omitempty"`
	EndAddress      string   `json:"endAddress,omitempty"`
	IPVersion       string   `json:"ipVersion,omitempty"`
	Name            string   `json:"name,omitempty"`
	Type            string   `json:"type,omitempty"`
	Country         string   `json:"country,omitempty"`
	ParentHandle    string   `json:"parentHandle,omitempty"`
	Status          []string `json:"status,omitempty"`
	Entities        []Entity `json:"entities,omitempty"`
	Remarks         []Remark `json:"remarks,omitempty"`
	Links           []Link   `json:"links,omitempty"`
	Port43          string   `json:"port43,omitempty"`
	Events          []Event  `json:"events,omitempty"`
}
