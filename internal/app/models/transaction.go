package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceLine is one priced item on a charge slip. Amount is the
// authoritative line total; ProcedureAmount and ItemAmount are informational
// cost breakdowns and need not sum to Amount.
type ServiceLine struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Type            string             `json:"type" bson:"type"`
	Description     string             `json:"description" bson:"description"`
	ProcedureAmount *float64           `json:"procedureAmount,omitempty" bson:"procedureAmount,omitempty"`
	ItemUsed        string             `json:"itemUsed,omitempty" bson:"itemUsed,omitempty"`
	ItemAmount      *float64           `json:"itemAmount,omitempty" bson:"itemAmount,omitempty"`
	Qty             int                `json:"qty" bson:"qty"`
	Amount          float64            `json:"amount" bson:"amount"`
}

// Transaction is one charge slip: a bundle of service lines billed against a
// patient during one admission. It is deleted (after archival snapshot) on
// discharge, and is never persisted with zero service lines.
type Transaction struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TransactionID string             `json:"transactionId" bson:"transactionId"`
	AdmissionID   string             `json:"admissionId" bson:"admissionId"`
	PatientID     string             `json:"patientId" bson:"patientId"`
	CategoryID    string             `json:"categoryId" bson:"categoryId"`
	Services      []ServiceLine      `json:"services" bson:"services"`
	Status        TransactionStatus  `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// TotalAmount sums the authoritative line totals.
func (t *Transaction) TotalAmount() float64 {
	var total float64
	for _, s := range t.Services {
		total += s.Amount
	}
	return total
}
