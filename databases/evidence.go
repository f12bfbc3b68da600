package databases

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/whisprnet/whispr-api/models"
)

const evidenceName = "evidence"

// EvidenceDatabase contains the methods to use with the evidence database.
// FindOne returns (nil, nil) when the file does not exist.
type EvidenceDatabase interface {
	InsertOne(ctx context.Context, file models.EvidenceFile) error
	FindOne(ctx context.Context, id uint64) (*models.EvidenceFile, error)
}

type evidenceDatabase struct {
	db DatabaseHelper
}

// NewEvidenceDatabase initializes a new instance of evidence database with the provided db connection
func NewEvidenceDatabase(db DatabaseHelper) EvidenceDatabase {
	return &evidenceDatabase{
		db: db,
	}
}

func (e *evidenceDatabase) InsertOne(ctx context.Context, file models.EvidenceFile) error {
	_, err := e.db.Collection(evidenceName).InsertOne(ctx, file)
	return err
}

func (e *evidenceDatabase) FindOne(ctx context.Context, id uint64) (*models.EvidenceFile, error) {
	file := &models.EvidenceFile{}
	err := e.db.Collection(evidenceName).FindOne(ctx, bson.M{"_id": id}).Decode(file)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}
