package model

// Account is a Mercury bank account as returned by GET /accounts. Only the
// fields the exporter needs are typed; everything else is left on the wire.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
