package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity a quote request may carry.
const MaxQuantity = math.MaxInt32

// QuoteStatus is the approval state of a quote request.
type QuoteStatus string

const (
	QuotePending  QuoteStatus = "pending"
	QuoteApproved QuoteStatus = "approved"
	QuoteRejected QuoteStatus = "rejected"
)

// Valid reports whether s is one of the known statuses. Any valid status may
// replace any other: there is no transition graph.
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuotePending, QuoteApproved, QuoteRejected:
		return true
	}
	return false
}

// QuoteRequest is a client's request for a quote on a product.
type QuoteRequest struct {
	ID        string
	ClientID  string
	ProductID string
	Quantity  int
	Message   string
	Status    QuoteStatus
	CreatedAt time.Time
}

// QuoteView is a quote request joined with its client and product.
type QuoteView struct {
	QuoteRequest
	ClientName   string
	ClientEmail  string
	ProductName  string
	ProductPrice decimal.Decimal
}
