package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is a department-scoped event produced by pipeline transitions.
type Notification struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Department string             `json:"department" bson:"department"`
	Event      string             `json:"event" bson:"event"`
	Message    string             `json:"message" bson:"message"`
	PatientID  string             `json:"patientId,omitempty" bson:"patientId,omitempty"`
	RefID      string             `json:"refId,omitempty" bson:"refId,omitempty"`
	Read       bool               `json:"read" bson:"read"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}
