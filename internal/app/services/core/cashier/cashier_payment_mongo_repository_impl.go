package cashier

import (
	"context"

	"hims-service/internal/app/contracts"
	"hims-service/internal/app/models"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CashierPaymentMongoRepository struct {
	Collection *mongo.Collection
}

func NewCashierPaymentMongoRepository(db *mongo.Database) contracts.CashierPaymentRepository {
	return &CashierPaymentMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionCashierPayments),
	}
}

func (r *CashierPaymentMongoRepository) Insert(ctx context.Context, payment *models.CashierPayment) (*models.CashierPayment, error) {
	result, err := r.Collection.InsertOne(ctx, payment)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		payment.ID = oid
	}
	return payment, nil
}

func (r *CashierPaymentMongoRepository) FindRecent(ctx context.Context, limit int64) ([]models.CashierPayment, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var payments []models.CashierPayment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return payments, nil
}
