package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Diagnosis is one dated clinical entry in a patient's medical record.
type Diagnosis struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Date        time.Time          `json:"date" bson:"date"`
	Complaint   string             `json:"complaint,omitempty" bson:"complaint,omitempty"`
	DoctorOrder string             `json:"doctor_order,omitempty" bson:"doctor_order,omitempty"`
	NurseAssist string             `json:"nurse_assist,omitempty" bson:"nurse_assist,omitempty"`
	Doctor      string             `json:"doctor,omitempty" bson:"doctor,omitempty"`
}

// Medical is the running medical record for a patient. Diagnoses dated on or
// after the current admission are snapshotted and pruned at discharge.
type Medical struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PatientID string             `json:"patientId" bson:"patientId"`
	HRN       string             `json:"hrn,omitempty" bson:"hrn,omitempty"`
	Diagnoses []Diagnosis        `json:"diagnoses" bson:"diagnoses"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SnapshotDiagnosis maps a live diagnosis into its archival shape.
func SnapshotDiagnosis(d Diagnosis) DiagnosisSnapshot {
	return DiagnosisSnapshot{
		Date:        d.Date,
		Complaint:   d.Complaint,
		DoctorOrder: d.DoctorOrder,
		NurseAssist: d.NurseAssist,
		Doctor:      d.Doctor,
	}
}
