package notifications

import (
	"context"
	"time"

	"hims-service/internal/app/contracts"
	"hims-service/internal/app/models"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type notificationSink struct {
	Collection *mongo.Collection
	Channel    *amqp091.Channel
	Queue      string
	Logger     *zap.Logger
}

// NewNotificationSink stores department notifications in mongo and mirrors
// each as a domain event on the rabbitmq queue. Every path is best-effort:
// a failed notification never fails the business operation that raised it.
func NewNotificationSink(db *mongo.Database, rabbitMQConnection *amqp091.Connection, queue string, logger *zap.Logger) (contracts.NotificationSink, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	return &notificationSink{
		Collection: db.Collection(constvars.MongoCollectionNotifications),
		Channel:    channel,
		Queue:      queue,
		Logger:     logger,
	}, nil
}

func (s *notificationSink) Notify(ctx context.Context, notification *models.Notification) {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	_, err := s.Collection.InsertOne(ctx, notification)
	if err != nil {
		s.Logger.Warn("failed to store notification",
			zap.String("department", notification.Department),
			zap.String("event", notification.Event),
			zap.Error(err),
		)
	}

	s.publish(ctx, notification)
}

func (s *notificationSink) publish(ctx context.Context, notification *models.Notification) {
	body, err := json.Marshal(notification)
	if err != nil {
		s.Logger.Warn("failed to marshal domain event", zap.Error(err))
		return
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		s.Logger.Warn("failed to publish domain event",
			zap.String("event", notification.Event),
			zap.Error(err),
		)
	}
}

func (s *notificationSink) ClearUnread(ctx context.Context, patientID, department string) error {
	filter := bson.M{
		"patientId":  patientID,
		"department": department,
		"read":       false,
	}
	_, err := s.Collection.DeleteMany(ctx, filter)
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (s *notificationSink) FindUnread(ctx context.Context, department string) ([]models.Notification, error) {
	cursor, err := s.Collection.Find(ctx, bson.M{"department": department, "read": false})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return notifications, nil
}
