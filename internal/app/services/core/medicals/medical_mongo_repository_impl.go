package medicals

import (
	"context"
	"time"

	"hims-service/internal/app/contracts"
	"hims-service/internal/app/models"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MedicalMongoRepository struct {
	Collection *mongo.Collection
}

func NewMedicalMongoRepository(db *mongo.Database) contracts.MedicalRepository {
	return &MedicalMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionMedicals),
	}
}

func (r *MedicalMongoRepository) FindByPatientID(ctx context.Context, patientID string) (*models.Medical, error) {
	var medical models.Medical
	err := r.Collection.FindOne(ctx, bson.M{"patientId": patientID}).Decode(&medical)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &medical, nil
}

func (r *MedicalMongoRepository) HasRecord(ctx context.Context, patientID string) (bool, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"patientId": patientID})
	if err != nil {
		return false, exceptions.ErrMongoDBFindDocument(err)
	}
	return count > 0, nil
}

func (r *MedicalMongoRepository) FindDiagnosesSince(ctx context.Context, patientID string, since time.Time) ([]models.Diagnosis, error) {
	medical, err := r.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if medical == nil {
		return nil, nil
	}

	var diagnoses []models.Diagnosis
	for _, d := range medical.Diagnoses {
		if !d.Date.Before(since) {
			diagnoses = append(diagnoses, d)
		}
	}
	return diagnoses, nil
}

func (r *MedicalMongoRepository) RemoveDiagnosesSince(ctx context.Context, patientID string, since time.Time) error {
	filter := bson.M{"patientId": patientID}
	update := bson.M{
		"$pull": bson.M{
			"diagnoses": bson.M{"date": bson.M{"$gte": since}},
		},
	}
	_, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
