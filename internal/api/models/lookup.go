package models

// RecordEnvelope wraps one classified registration data record with
// the server that produced it.
type RecordEnvelope struct {
	Class     string `json:"class"`
	ServerURL string `json:"server_url"`
	Record    any    `json:"record"`
}

// LookupResponse is one answered lookup. Registrar is present only
// when a referral was followed.
type LookupResponse struct {
	Query     string          `json:"query"`
	Kind      string          `json:"kind"`
	Registry  RecordEnvelope  `json:"registry"`
	Registrar *RecordEnvelope `json:"registrar,omitempty"`
}
