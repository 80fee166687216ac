package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditLog records one money-affecting action with its before and after state.
type AuditLog struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Action    string             `json:"action" bson:"action"`
	Resource  string             `json:"resource" bson:"resource"`
	RefID     string             `json:"refId,omitempty" bson:"refId,omitempty"`
	PatientID string             `json:"patientId,omitempty" bson:"patientId,omitempty"`
	Actor     string             `json:"actor" bson:"actor"`
	Before    map[string]any     `json:"before,omitempty" bson:"before,omitempty"`
	After     map[string]any     `json:"after,omitempty" bson:"after,omitempty"`
	At        time.Time          `json:"at" bson:"at"`
}
