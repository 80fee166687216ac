package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Promissory is a hospital-backed pledge to cover part of a bill, tied to
// exactly one admission. Once settled it must never apply to another
// admission of the same patient.
type Promissory struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PatientID       string             `json:"patientId" bson:"patientId"`
	TransactionIDs  []string           `json:"transactionIds" bson:"transactionIds"`
	AdmissionNumber string             `json:"admissionNumber,omitempty" bson:"admissionNumber,omitempty"`
	DateIssued      time.Time          `json:"dateIssued" bson:"dateIssued"`
	DateApproved    *time.Time         `json:"dateApproved,omitempty" bson:"dateApproved,omitempty"`
	ApprovedBy      string             `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	PaymentExpected *time.Time         `json:"paymentExpected,omitempty" bson:"paymentExpected,omitempty"`
	Status          PromissoryStatus   `json:"status" bson:"status"`
	Amount          float64            `json:"amount" bson:"amount"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
	ImagePath       string             `json:"imagePath,omitempty" bson:"imagePath,omitempty"`
	DateRejected    *time.Time         `json:"dateRejected,omitempty" bson:"dateRejected,omitempty"`
	RejectedBy      string             `json:"rejectedBy,omitempty" bson:"rejectedBy,omitempty"`
	RejectionReason string             `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	SettledAt       *time.Time         `json:"settledAt,omitempty" bson:"settledAt,omitempty"`
}
