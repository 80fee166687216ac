package promissories

import (
	"context"
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

type PromissoryMongoRepository struct {
	Collection *mongo.Collection
}

func NewPromissoryMongoRepository(db *mongo.Database) contracts.PromissoryRepository {
	return &PromissoryMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionPromissories),
	}
}

func (r *PromissoryMongoRepository) Insert(ctx context.Context, promissory *models.Promissory) (*models.Promissory, error) {
	result, err := r.Collection.InsertOne(ctx, promissory)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		promissory.ID = oid
	}
	return promissory, nil
}

func (r *PromissoryMongoRepository) FindAll(ctx context.Context) ([]models.Promissory, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *PromissoryMongoRepository) FindByID(ctx context.Context, promissoryID string) (*models.Promissory, error) {
	objectID, err := primitive.ObjectIDFromHex(promissoryID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var promissory models.Promissory
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&promissory)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &promissory, nil
}

func (r *PromissoryMongoRepository) FindByStatusForAdmission(ctx context.Context, patientID, admissionNumber string, status models.PromissoryStatus) ([]models.Promissory, error) {
	filter := bson.M{
		"patientId":       patientID,
		"admissionNumber": admissionNumber,
		"status":          status,
	}
	return r.findMany(ctx, filter)
}

func (r *PromissoryMongoRepository) FindOpenByAdmission(ctx context.Context, patientID, admissionNumber string) (*models.Promissory, error) {
	filter := bson.M{
		"patientId":       patientID,
		"admissionNumber": admissionNumber,
		"status": bson.M{"$nin": []models.PromissoryStatus{
			models.PromissorySettled,
			models.PromissoryRejected,
		}},
	}

	var promissory models.Promissory
	opts := options.FindOne().SetSort(bson.M{"dateIssued": -1})
	err := r.Collection.FindOne(ctx, filter, opts).Decode(&promissory)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &promissory, nil
}

func (r *PromissoryMongoRepository) UpdateIfStatus(ctx context.Context, promissoryID string, requiredStatus models.PromissoryStatus, promissory *models.Promissory) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(promissoryID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{"_id": objectID, "status": requiredStatus}
	update := bson.M{"$set": bson.M{
		"status":          promissory.Status,
		"amount":          promissory.Amount,
		"notes":           promissory.Notes,
		"paymentExpected": promissory.PaymentExpected,
		"dateApproved":    promissory.DateApproved,
		"approvedBy":      promissory.ApprovedBy,
		"dateRejected":    promissory.DateRejected,
		"rejectedBy":      promissory.RejectedBy,
		"rejectionReason": promissory.RejectionReason,
	}}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (r *PromissoryMongoRepository) Settle(ctx context.Context, promissoryID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(promissoryID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	now := time.Now()
	filter := bson.M{
		"_id": objectID,
		"status": bson.M{"$in": []models.PromissoryStatus{
			models.PromissoryApproved,
			models.PromissoryOverdue,
		}},
	}
	update := bson.M{"$set": bson.M{
		"status":    models.PromissorySettled,
		"settledAt": now,
	}}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (r *PromissoryMongoRepository) findMany(ctx context.Context, filter bson.M) ([]models.Promissory, error) {
	opts := options.Find().SetSort(bson.M{"dateIssued": -1})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var promissories []models.Promissory
	if err := cursor.All(ctx, &promissories); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return promissories, nil
}
