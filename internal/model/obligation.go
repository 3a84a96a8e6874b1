package model

import (
	"time"

	"github.com/google/uuid"
)

// ObligationType tags the billable document behind an outstanding balance.
type ObligationType string

const (
	ObligationContract       ObligationType = "CONTRACT"
	ObligationPrintedInvoice ObligationType = "PRINTED_INVOICE"
	ObligationSalesInvoice   ObligationType = "SALES_INVOICE"
	ObligationCompositeTask  ObligationType = "COMPOSITE_TASK"
)

// Obligation is any billable document with a remaining amount owed.
// Paid only ever increases; Remaining never goes negative.
type Obligation struct {
	ID         uuid.UUID
	Number     int64 // numeric identifier of the underlying document; stable sort key
	Type       ObligationType
	CustomerID uuid.UUID
	Label      string
	Total      float64
	Paid       float64
}

func (o Obligation) Remaining() float64 {
	remaining := o.Total - o.Paid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// PaymentAllocation is one obligation's share of a received payment.
type PaymentAllocation struct {
	ObligationID uuid.UUID
	Type         ObligationType
	Amount       float64
}

// PaymentReceipt is the immutable record written when a payment commits.
type PaymentReceipt struct {
	ID            uuid.UUID
	Number        int64
	CustomerID    uuid.UUID
	PayerName     string
	Amount        float64
	Method        string
	Notes         string
	Lines         []PaymentAllocation
	CreatedByUser uuid.UUID
	CreatedAt     time.Time
}
