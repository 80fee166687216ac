package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admission tracks one hospital stay from admit through clearing to
// discharge. The live document is deleted at discharge, after the archival
// snapshot is written.
type Admission struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AdmittingID  string             `json:"admittingId" bson:"admittingId"`
	PatientType  string             `json:"patientType" bson:"patientType"`
	PatientID    string             `json:"patientId" bson:"patientId"`
	FullName     string             `json:"fullName" bson:"fullName"`
	Birthdate    *time.Time         `json:"birthdate,omitempty" bson:"birthdate,omitempty"`
	Category     string             `json:"category" bson:"category"`
	WalkIn       bool               `json:"walkIn" bson:"walkIn"`
	ReferredBy   string             `json:"referredBy,omitempty" bson:"referredBy,omitempty"`
	AdmittedBy   string             `json:"admittedBy,omitempty" bson:"admittedBy,omitempty"`
	DischargeBy  string             `json:"dischargeBy,omitempty" bson:"dischargeBy,omitempty"`
	DateAdmitted time.Time          `json:"dateAdmitted" bson:"dateAdmitted"`
	AdmittedAt   time.Time          `json:"admittedAt" bson:"admittedAt"`
	IsCleared    bool               `json:"isCleared" bson:"isCleared"`
	ClearedAt    *time.Time         `json:"clearedAt,omitempty" bson:"clearedAt,omitempty"`
	ClearedBy    string             `json:"clearedBy,omitempty" bson:"clearedBy,omitempty"`
	Discharged   bool               `json:"discharged" bson:"discharged"`
	DischargedAt *time.Time         `json:"dischargedAt,omitempty" bson:"dischargedAt,omitempty"`
}

// ProcessedPatient flags a patient as currently being processed under an
// admission; the flag is cleared at discharge so the patient can be
// re-admitted.
type ProcessedPatient struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PatientID   string             `json:"patientId" bson:"patientId"`
	Processed   bool               `json:"processed" bson:"processed"`
	ProcessedAt time.Time          `json:"processedAt" bson:"processedAt"`
}
