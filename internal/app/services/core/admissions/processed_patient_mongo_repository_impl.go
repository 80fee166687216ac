package admissions

import (
	"context"
	"sync"
	"time"

	"hims-service/internal/app/contracts"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProcessedPatientMongoRepository struct {
	Collection *mongo.Collection
}

var (
	processedPatientMongoRepositoryInstance contracts.ProcessedPatientRepository
	onceProcessedPatientMongoRepository     sync.Once
)

func NewProcessedPatientMongoRepository(db *mongo.Database) contracts.ProcessedPatientRepository {
	onceProcessedPatientMongoRepository.Do(func() {
		processedPatientMongoRepositoryInstance = &ProcessedPatientMongoRepository{
			Collection: db.Collection(constvars.MongoCollectionProcessedPatients),
		}
	})
	return processedPatientMongoRepositoryInstance
}

func (repo *ProcessedPatientMongoRepository) MarkProcessed(ctx context.Context, patientID string) error {
	filter := bson.M{"patientId": patientID}
	update := bson.M{"$set": bson.M{
		"patientId":   patientID,
		"processed":   true,
		"processedAt": time.Now(),
	}}
	opts := options.Update().SetUpsert(true)

	_, err := repo.Collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *ProcessedPatientMongoRepository) ClearProcessed(ctx context.Context, patientID string) error {
	_, err := repo.Collection.DeleteOne(ctx, bson.M{"patientId": patientID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (repo *ProcessedPatientMongoRepository) IsProcessed(ctx context.Context, patientID string) (bool, error) {
	count, err := repo.Collection.CountDocuments(ctx, bson.M{"patientId": patientID, "processed": true})
	if err != nil {
		return false, exceptions.ErrMongoDBFindDocument(err)
	}
	return count > 0, nil
}
