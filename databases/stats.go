package databases

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/whisprnet/whispr-api/models"
)

const statsName = "stats"

// statsDocID keys the singleton statistics document
const statsDocID = "authority"

// StatsDatabase reads and replaces the singleton statistics record. Get
// returns zero-valued stats when the document has not been written yet.
type StatsDatabase interface {
	Get(ctx context.Context) (models.AuthorityStats, error)
	Save(ctx context.Context, stats models.AuthorityStats) error
}

type statsDatabase struct {
	db DatabaseHelper
}

// NewStatsDatabase initializes a new instance of stats database with the provided db connection
func NewStatsDatabase(db DatabaseHelper) StatsDatabase {
	return &statsDatabase{
		db: db,
	}
}

func (s *statsDatabase) Get(ctx context.Context) (models.AuthorityStats, error) {
	var doc struct {
		ID    string                `bson:"_id"`
		Stats models.AuthorityStats `bson:"stats"`
	}
	err := s.db.Collection(statsName).FindOne(ctx, bson.M{"_id": statsDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.AuthorityStats{}, nil
	}
	if err != nil {
		return models.AuthorityStats{}, err
	}
	return doc.Stats, nil
}

func (s *statsDatabase) Save(ctx context.Context, stats models.AuthorityStats) error {
	opts := options.Replace().SetUpsert(true)
	doc := struct {
		ID    string                `bson:"_id"`
		Stats models.AuthorityStats `bson:"stats"`
	}{ID: statsDocID, Stats: stats}
	_, err := s.db.Collection(statsName).ReplaceOne(ctx, bson.M{"_id": statsDocID}, doc, opts)
	return err
}
