package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoidedService is the archived shape of a removed service line. ServiceType
// replaces the live line's Type field so the archive never collides with
// reserved names in reporting queries.
type VoidedService struct {
	ServiceType     string   `json:"serviceType" bson:"serviceType"`
	Description     string   `json:"description" bson:"description"`
	ProcedureAmount *float64 `json:"procedureAmount,omitempty" bson:"procedureAmount,omitempty"`
	ItemUsed        string   `json:"itemUsed,omitempty" bson:"itemUsed,omitempty"`
	ItemAmount      *float64 `json:"itemAmount,omitempty" bson:"itemAmount,omitempty"`
	Qty             int      `json:"qty" bson:"qty"`
	Amount          float64  `json:"amount" bson:"amount"`
}

// VoidedTransaction records one service line removed from the ledger. It is
// write-once and never re-enters the ledger.
type VoidedTransaction struct {
	ID                    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OriginalTransactionID string             `json:"originalTransactionId" bson:"originalTransactionId"`
	AdmissionID           string             `json:"admissionId" bson:"admissionId"`
	PatientID             string             `json:"patientId" bson:"patientId"`
	Department            string             `json:"department" bson:"department"`
	Service               VoidedService      `json:"service" bson:"service"`
	VoidReason            VoidReason         `json:"voidReason" bson:"voidReason"`
	VoidedAt              time.Time          `json:"voidedAt" bson:"voidedAt"`
	VoidedBy              string             `json:"voidedBy" bson:"voidedBy"`
}

// ArchiveService maps a live service line to its archival shape.
func ArchiveService(s ServiceLine) VoidedService {
	return VoidedService{
		ServiceType:     s.Type,
		Description:     s.Description,
		ProcedureAmount: s.ProcedureAmount,
		ItemUsed:        s.ItemUsed,
		ItemAmount:      s.ItemAmount,
		Qty:             s.Qty,
		Amount:          s.Amount,
	}
}
