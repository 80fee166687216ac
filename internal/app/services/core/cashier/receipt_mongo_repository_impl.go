package cashier

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"hims-service/internal/app/contracts"
	"hims-service/internal/app/models"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReceiptMongoRepository struct {
	Collection *mongo.Collection
}

func NewReceiptMongoRepository(db *mongo.Database) contracts.ReceiptRepository {
	return &ReceiptMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionReceipts),
	}
}

func (r *ReceiptMongoRepository) Insert(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error) {
	result, err := r.Collection.InsertOne(ctx, receipt)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		receipt.ID = oid
	}
	return receipt, nil
}

func (r *ReceiptMongoRepository) ExistsORNumber(ctx context.Context, orNumber string) (bool, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"orNumber": orNumber})
	if err != nil {
		return false, exceptions.ErrMongoDBFindDocument(err)
	}
	return count > 0, nil
}

// HighestORSequence scans the year's receipts for the largest sequence
// already issued. Used once per year to seed the counter, so a collection
// scan over the prefix is acceptable.
func (r *ReceiptMongoRepository) HighestORSequence(ctx context.Context, year int) (int64, error) {
	prefix := fmt.Sprintf(constvars.ORNumberPrefixFormat, year)
	filter := bson.M{"orNumber": bson.M{"$regex": "^" + prefix}}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var highest int64
	for cursor.Next(ctx) {
		var receipt models.Receipt
		if err := cursor.Decode(&receipt); err != nil {
			return 0, exceptions.ErrMongoDBIterateDocuments(err)
		}
		seqPart := strings.TrimPrefix(receipt.ORNumber, prefix)
		seq, err := strconv.ParseInt(seqPart, 10, 64)
		if err != nil {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return highest, nil
}
