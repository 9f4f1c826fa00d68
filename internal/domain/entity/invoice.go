package entity

import "time"

// InvoiceDocument is the composed, renderable representation of an order
// plus branding. It is derived and transient: built on demand from a draft
// preview or a persisted bill, never stored.
type InvoiceDocument struct {
	InvoiceNumber string
	IssueDate     time.Time
	DueDate       time.Time
	Business      BusinessProfile
	Customer      Customer
	Lines         []BillLine
	Total         int64 // minor units
}

// BillMeta supplies the identifying fields the composer needs. For a
// pre-save preview the ID is a locally generated placeholder, clearly
// distinguishable from a persisted id.
type BillMeta struct {
	ID       string
	BillDate time.Time
}
