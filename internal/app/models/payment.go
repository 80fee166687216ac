package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is one pending/paid bundle of transactions for a patient, created
// when billing is confirmed. FinalTotal is persisted as supplied by the
// billing clerk's terminal and is not re-derived server-side.
type Payment struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	PatientID        string              `json:"patientId" bson:"patientId"`
	TransactionIDs   []string            `json:"transactionIds" bson:"transactionIds"`
	AdmissionNumber  string              `json:"admissionNumber,omitempty" bson:"admissionNumber,omitempty"`
	Subtotal         float64             `json:"subtotal" bson:"subtotal"`
	DiscountTypes    []string            `json:"discountTypes" bson:"discountTypes"`
	DiscountRate     float64             `json:"discountRate" bson:"discountRate"`
	DiscountAmount   float64             `json:"discountAmount" bson:"discountAmount"`
	PromissoryID     *primitive.ObjectID `json:"promissoryId,omitempty" bson:"promissoryId,omitempty"`
	PromissoryAmount float64             `json:"promissoryAmount" bson:"promissoryAmount"`
	FinalTotal       float64             `json:"finalTotal" bson:"finalTotal"`
	BillNumber       string              `json:"billNumber" bson:"billNumber"`
	PaymentDate      *time.Time          `json:"paymentDate,omitempty" bson:"paymentDate,omitempty"`
	ProcessedBy      string              `json:"processedBy,omitempty" bson:"processedBy,omitempty"`
	Status           PaymentStatus       `json:"status" bson:"status"`
	PatientName      string              `json:"patientName" bson:"patientName"`
	PatientHRN       string              `json:"patientHRN" bson:"patientHRN"`
	CreatedAt        time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// BalancedTotals reports whether the persisted breakdown satisfies
// finalTotal = subtotal - discountAmount - promissoryAmount within a
// centavo. Imbalance is logged, not rejected.
func (p *Payment) BalancedTotals() bool {
	diff := p.Subtotal - p.DiscountAmount - p.PromissoryAmount - p.FinalTotal
	return diff < 0.01 && diff > -0.01
}
