package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Patient is the master registry entry this service reads but never creates.
type Patient struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PatientID  string             `json:"patientId" bson:"patientId"`
	FirstName  string             `json:"firstName" bson:"firstName"`
	MiddleName string             `json:"middleName,omitempty" bson:"middleName,omitempty"`
	LastName   string             `json:"lastName" bson:"lastName"`
	Birthdate  *time.Time         `json:"birthdate,omitempty" bson:"birthdate,omitempty"`
	Sex        string             `json:"sex,omitempty" bson:"sex,omitempty"`
	Address    string             `json:"address,omitempty" bson:"address,omitempty"`
	Contact    string             `json:"contact,omitempty" bson:"contact,omitempty"`
	Archived   bool               `json:"archived" bson:"archived"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

func (p Patient) FullName() string {
	name := p.FirstName
	if p.MiddleName != "" {
		name += " " + p.MiddleName
	}
	return name + " " + p.LastName
}
