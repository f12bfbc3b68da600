package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/whisprnet/whispr-api/models"
)

const messageName = "messages"

// MessageDatabase contains the methods to use with the message database.
// Threads are append-only; FindByReport returns messages in insertion
// order.
type MessageDatabase interface {
	InsertOne(ctx context.Context, message models.Message) error
	FindByReport(ctx context.Context, reportID uint64) ([]models.Message, error)
}

type messageDatabase struct {
	db DatabaseHelper
}

// NewMessageDatabase initializes a new instance of message database with the provided db connection
func NewMessageDatabase(db DatabaseHelper) MessageDatabase {
	return &messageDatabase{
		db: db,
	}
}

func (m *messageDatabase) InsertOne(ctx context.Context, message models.Message) error {
	_, err := m.db.Collection(messageName).InsertOne(ctx, message)
	return err
}

func (m *messageDatabase) FindByReport(ctx context.Context, reportID uint64) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := m.db.Collection(messageName).Find(ctx, bson.M{"reportId": reportID}, opts)
	if err != nil {
		return nil, err
	}
	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
