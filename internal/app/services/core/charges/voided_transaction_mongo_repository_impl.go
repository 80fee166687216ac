package charges

import (
	"context"

	"hims-service/internal/app/contracts"
	"hims-service/internal/app/models"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type VoidedTransactionMongoRepository struct {
	Collection *mongo.Collection
}

func NewVoidedTransactionMongoRepository(db *mongo.Database) contracts.VoidedTransactionRepository {
	return &VoidedTransactionMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionVoidedTransactions),
	}
}

func (r *VoidedTransactionMongoRepository) Insert(ctx context.Context, voided *models.VoidedTransaction) error {
	_, err := r.Collection.InsertOne(ctx, voided)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *VoidedTransactionMongoRepository) InsertMany(ctx context.Context, voided []models.VoidedTransaction) error {
	if len(voided) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(voided))
	for i := range voided {
		docs = append(docs, voided[i])
	}
	_, err := r.Collection.InsertMany(ctx, docs)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *VoidedTransactionMongoRepository) FindAll(ctx context.Context) ([]models.VoidedTransaction, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *VoidedTransactionMongoRepository) FindByDepartment(ctx context.Context, department string) ([]models.VoidedTransaction, error) {
	return r.findMany(ctx, bson.M{"department": department})
}

func (r *VoidedTransactionMongoRepository) findMany(ctx context.Context, filter bson.M) ([]models.VoidedTransaction, error) {
	opts := options.Find().SetSort(bson.M{"voidedAt": -1})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var voided []models.VoidedTransaction
	if err := cursor.All(ctx, &voided); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return voided, nil
}
