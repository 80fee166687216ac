package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiagnosisSnapshot is one clinical entry archived at discharge.
type DiagnosisSnapshot struct {
	Date        time.Time `json:"date" bson:"date"`
	Complaint   string    `json:"complaint,omitempty" bson:"complaint,omitempty"`
	DoctorOrder string    `json:"doctor_order,omitempty" bson:"doctor_order,omitempty"`
	NurseAssist string    `json:"nurse_assist,omitempty" bson:"nurse_assist,omitempty"`
	Doctor      string    `json:"doctor,omitempty" bson:"doctor,omitempty"`
}

// TransactionSnapshot is the archival shape of one charge slip.
type TransactionSnapshot struct {
	TransactionID string            `json:"transactionId" bson:"transactionId"`
	Status        TransactionStatus `json:"status" bson:"status"`
	CreatedAt     time.Time         `json:"createdAt" bson:"createdAt"`
	Services      []VoidedService   `json:"services" bson:"services"`
}

// DischargedPatient is the permanent, write-once archive of one admission:
// the sole source for historical revenue reporting.
type DischargedPatient struct {
	ID           primitive.ObjectID    `json:"id" bson:"_id,omitempty"`
	AdmittingID  string                `json:"admittingId" bson:"admittingId"`
	PatientID    string                `json:"patientId" bson:"patientId"`
	PatientRef   *primitive.ObjectID   `json:"patientRef,omitempty" bson:"patientRef,omitempty"`
	FullName     string                `json:"fullName" bson:"fullName"`
	Birthdate    *time.Time            `json:"birthdate,omitempty" bson:"birthdate,omitempty"`
	Department   string                `json:"department" bson:"department"`
	AdmittedAt   time.Time             `json:"admittedAt" bson:"admittedAt"`
	DischargedAt time.Time             `json:"dischargedAt" bson:"dischargedAt"`
	DischargedBy string                `json:"dischargedBy" bson:"dischargedBy"`
	ClearedBy    string                `json:"clearedBy,omitempty" bson:"clearedBy,omitempty"`
	Notes        string                `json:"notes,omitempty" bson:"notes,omitempty"`
	Diagnoses    []DiagnosisSnapshot   `json:"diagnoses" bson:"diagnoses"`
	Transactions []TransactionSnapshot `json:"transactions" bson:"transactions"`
	CreatedAt    time.Time             `json:"createdAt" bson:"createdAt"`
}

// SnapshotTransaction maps a live charge slip into its archival shape.
func SnapshotTransaction(tx Transaction) TransactionSnapshot {
	services := make([]VoidedService, 0, len(tx.Services))
	for _, s := range tx.Services {
		services = append(services, ArchiveService(s))
	}
	return TransactionSnapshot{
		TransactionID: tx.TransactionID,
		Status:        tx.Status,
		CreatedAt:     tx.CreatedAt,
		Services:      services,
	}
}
