package admissions

import (
	"context"
	"sync"

	"hims-service/internal/app/contracts"
	"hims-service/internal/app/models"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DischargedPatientMongoRepository struct {
	Collection *mongo.Collection
}

var (
	dischargedPatientMongoRepositoryInstance contracts.DischargedPatientRepository
	onceDischargedPatientMongoRepository     sync.Once
)

func NewDischargedPatientMongoRepository(db *mongo.Database) contracts.DischargedPatientRepository {
	onceDischargedPatientMongoRepository.Do(func() {
		dischargedPatientMongoRepositoryInstance = &DischargedPatientMongoRepository{
			Collection: db.Collection(constvars.MongoCollectionDischargedPatients),
		}
	})
	return dischargedPatientMongoRepositoryInstance
}

func (repo *DischargedPatientMongoRepository) Insert(ctx context.Context, discharged *models.DischargedPatient) (*models.DischargedPatient, error) {
	result, err := repo.Collection.InsertOne(ctx, discharged)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		discharged.ID = oid
	}
	return discharged, nil
}

func (repo *DischargedPatientMongoRepository) FindPage(ctx context.Context, page, pageSize int) ([]models.DischargedPatient, int64, error) {
	total, err := repo.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	opts := options.Find().
		SetSort(bson.M{"dischargedAt": -1}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := repo.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var discharged []models.DischargedPatient
	if err := cursor.All(ctx, &discharged); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return discharged, total, nil
}
