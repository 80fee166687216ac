package billing

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

type PaymentMongoRepository struct {
	Collection *mongo.Collection
}

func NewPaymentMongoRepository(db *mongo.Database) contracts.PaymentRepository {
	return &PaymentMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionPayments),
	}
}

func (r *PaymentMongoRepository) Insert(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	result, err := r.Collection.InsertOne(ctx, payment)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		payment.ID = oid
	}
	return payment, nil
}

func (r *PaymentMongoRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	objectID, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var payment models.Payment
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &payment, nil
}

func (r *PaymentMongoRepository) FindAll(ctx context.Context) ([]models.Payment, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *PaymentMongoRepository) FindPending(ctx context.Context) ([]models.Payment, error) {
	return r.findMany(ctx, bson.M{"status": models.PaymentPending})
}

func (r *PaymentMongoRepository) FindPendingByPatient(ctx context.Context, patientID string) (*models.Payment, error) {
	filter := bson.M{
		"patientId": patientID,
		"status":    models.PaymentPending,
	}

	var payment models.Payment
	opts := options.FindOne().SetSort(bson.M{"createdAt": -1})
	err := r.Collection.FindOne(ctx, filter, opts).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &payment, nil
}

func (r *PaymentMongoRepository) MarkPaid(ctx context.Context, paymentID, processedBy string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	now := time.Now()
	filter := bson.M{"_id": objectID, "status": models.PaymentPending}
	update := bson.M{"$set": bson.M{
		"status":      models.PaymentPaid,
		"paymentDate": now,
		"processedBy": processedBy,
		"updatedAt":   now,
	}}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (r *PaymentMongoRepository) DeletePendingByTransactionIDs(ctx context.Context, patientID string, transactionIDs []string) (int64, error) {
	filter := bson.M{
		"patientId":      patientID,
		"status":         models.PaymentPending,
		"transactionIds": bson.M{"$in": transactionIDs},
	}
	result, err := r.Collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount, nil
}

func (r *PaymentMongoRepository) findMany(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return payments, nil
}
