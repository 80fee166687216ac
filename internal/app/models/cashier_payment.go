package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CashierPayment is the immutable snapshot written when a cashier verifies a
// payment. Financial fields are duplicated from the Payment so the historical
// record survives later edits to live data.
type CashierPayment struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PaymentID        primitive.ObjectID `json:"paymentId" bson:"paymentId"`
	PatientID        string             `json:"patientId" bson:"patientId"`
	TransactionIDs   []string           `json:"transactionIds" bson:"transactionIds"`
	Subtotal         float64            `json:"subtotal" bson:"subtotal"`
	DiscountTypes    []string           `json:"discountTypes" bson:"discountTypes"`
	DiscountRate     float64            `json:"discountRate" bson:"discountRate"`
	DiscountAmount   float64            `json:"discountAmount" bson:"discountAmount"`
	PromissoryAmount float64            `json:"promissoryAmount" bson:"promissoryAmount"`
	FinalTotal       float64            `json:"finalTotal" bson:"finalTotal"`
	BillNumber       string             `json:"billNumber" bson:"billNumber"`
	PaymentDate      time.Time          `json:"paymentDate" bson:"paymentDate"`
	ProcessedBy      string             `json:"processedBy" bson:"processedBy"`
	PatientName      string             `json:"patientName" bson:"patientName"`
	PatientHRN       string             `json:"patientHRN" bson:"patientHRN"`
	PaymentMethod    string             `json:"paymentMethod" bson:"paymentMethod"`
	ReferenceNumber  string             `json:"referenceNumber,omitempty" bson:"referenceNumber,omitempty"`
	AmountReceived   float64            `json:"amountReceived" bson:"amountReceived"`
	ChangeGiven      float64            `json:"changeGiven" bson:"changeGiven"`
	Notes            string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}
