package admissions

import (
	"context"
	"sync"
	"time"

	"hims-service/internal/app/contracts"
	"hims-service/internal/app/models"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdmissionMongoRepository struct {
	Collection *mongo.Collection
}

var (
	admissionMongoRepositoryInstance contracts.AdmissionRepository
	onceAdmissionMongoRepository     sync.Once
)

func NewAdmissionMongoRepository(db *mongo.Database) contracts.AdmissionRepository {
	onceAdmissionMongoRepository.Do(func() {
		admissionMongoRepositoryInstance = &AdmissionMongoRepository{
			Collection: db.Collection(constvars.MongoCollectionAdmissions),
		}
	})
	return admissionMongoRepositoryInstance
}

func (repo *AdmissionMongoRepository) Insert(ctx context.Context, admission *models.Admission) (*models.Admission, error) {
	result, err := repo.Collection.InsertOne(ctx, admission)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		admission.ID = oid
	}
	return admission, nil
}

func (repo *AdmissionMongoRepository) FindByID(ctx context.Context, admissionID string) (*models.Admission, error) {
	admission := new(models.Admission)
	err := repo.Collection.FindOne(ctx, bson.M{"admittingId": admissionID}).Decode(admission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return admission, nil
}

func (repo *AdmissionMongoRepository) FindCurrentByPatient(ctx context.Context, patientID string) (*models.Admission, error) {
	filter := bson.M{"patientId": patientID, "discharged": false}
	opts := options.FindOne().SetSort(bson.M{"admittedAt": -1})

	admission := new(models.Admission)
	err := repo.Collection.FindOne(ctx, filter, opts).Decode(admission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return admission, nil
}

func (repo *AdmissionMongoRepository) FindAdmitted(ctx context.Context) ([]models.Admission, error) {
	filter := bson.M{"discharged": false}
	opts := options.Find().SetSort(bson.M{"admittedAt": -1})

	cursor, err := repo.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var admissions []models.Admission
	if err := cursor.All(ctx, &admissions); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return admissions, nil
}

func (repo *AdmissionMongoRepository) MarkCleared(ctx context.Context, admissionID, clearedBy string, at time.Time) (bool, error) {
	filter := bson.M{"admittingId": admissionID, "isCleared": false, "discharged": false}
	update := bson.M{"$set": bson.M{
		"isCleared": true,
		"clearedAt": at,
		"clearedBy": clearedBy,
	}}

	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (repo *AdmissionMongoRepository) SetDischargeNurse(ctx context.Context, admissionID, dischargeBy string) (bool, error) {
	filter := bson.M{"admittingId": admissionID, "discharged": false}
	update := bson.M{"$set": bson.M{"dischargeBy": dischargeBy}}

	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (repo *AdmissionMongoRepository) Delete(ctx context.Context, admissionID string) error {
	_, err := repo.Collection.DeleteOne(ctx, bson.M{"admittingId": admissionID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
