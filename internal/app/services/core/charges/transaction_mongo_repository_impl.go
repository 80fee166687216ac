package charges

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

type TransactionMongoRepository struct {
	Collection *mongo.Collection
}

func NewTransactionMongoRepository(db *mongo.Database) contracts.TransactionRepository {
	return &TransactionMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionTransactions),
	}
}

func (r *TransactionMongoRepository) Insert(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	result, err := r.Collection.InsertOne(ctx, transaction)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		transaction.ID = oid
	}
	return transaction, nil
}

func (r *TransactionMongoRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.Collection.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&transaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &transaction, nil
}

func (r *TransactionMongoRepository) FindByTransactionIDs(ctx context.Context, transactionIDs []string) ([]models.Transaction, error) {
	filter := bson.M{"transactionId": bson.M{"$in": transactionIDs}}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.M{"createdAt": 1}))
}

func (r *TransactionMongoRepository) FindByPatient(ctx context.Context, patientID string) ([]models.Transaction, error) {
	filter := bson.M{"patientId": patientID}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.M{"createdAt": 1}))
}

func (r *TransactionMongoRepository) FindUnpaidByPatient(ctx context.Context, patientID string) ([]models.Transaction, error) {
	filter := bson.M{
		"patientId": patientID,
		"status":    bson.M{"$ne": models.TransactionPaymentVerified},
	}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.M{"createdAt": 1}))
}

func (r *TransactionMongoRepository) FindUnpaidGroupedByPatient(ctx context.Context) (map[string][]models.Transaction, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": models.TransactionPaymentVerified}}}},
		bson.D{{Key: "$sort", Value: bson.M{"createdAt": 1}}},
	}
	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, exceptions.ErrMongoDBAggregate(err)
	}
	defer cursor.Close(ctx)

	var transactions []models.Transaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	grouped := make(map[string][]models.Transaction)
	for _, tx := range transactions {
		grouped[tx.PatientID] = append(grouped[tx.PatientID], tx)
	}
	return grouped, nil
}

func (r *TransactionMongoRepository) CountByAdmission(ctx context.Context, admissionID string) (int64, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"admissionId": admissionID})
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return count, nil
}

func (r *TransactionMongoRepository) CountByAdmissionNotInStatus(ctx context.Context, admissionID string, status models.TransactionStatus) (int64, error) {
	filter := bson.M{
		"admissionId": admissionID,
		"status":      bson.M{"$ne": status},
	}
	count, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return count, nil
}

func (r *TransactionMongoRepository) FindByAdmission(ctx context.Context, admissionID string) ([]models.Transaction, error) {
	filter := bson.M{"admissionId": admissionID}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.M{"createdAt": 1}))
}

func (r *TransactionMongoRepository) ReplaceServices(ctx context.Context, transactionID string, requiredStatus models.TransactionStatus, services []models.ServiceLine) (bool, error) {
	filter := bson.M{
		"transactionId": transactionID,
		"status":        requiredStatus,
	}
	update := bson.M{"$set": bson.M{"services": services}}
	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (r *TransactionMongoRepository) TransitionStatus(ctx context.Context, transactionID string, from, to models.TransactionStatus) (bool, error) {
	filter := bson.M{
		"transactionId": transactionID,
		"status":        from,
	}
	update := bson.M{"$set": bson.M{"status": to}}
	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (r *TransactionMongoRepository) DeleteIfStatus(ctx context.Context, transactionID string, requiredStatus models.TransactionStatus) (bool, error) {
	filter := bson.M{
		"transactionId": transactionID,
		"status":        requiredStatus,
	}
	result, err := r.Collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount > 0, nil
}

func (r *TransactionMongoRepository) DeleteByAdmission(ctx context.Context, admissionID string) error {
	_, err := r.Collection.DeleteMany(ctx, bson.M{"admissionId": admissionID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (r *TransactionMongoRepository) findMany(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Transaction, error) {
	cursor, err := r.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var transactions []models.Transaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return transactions, nil
}
