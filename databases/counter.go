package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const counterName = "counters"

// Counter names for the three ID allocators
const (
	CounterReports  = "reports"
	CounterMessages = "messages"
	CounterEvidence = "evidence"
)

// CounterDatabase allocates monotonic IDs per entity kind. The first
// allocation for a counter returns 1; allocated IDs are never reused,
// even when the operation that requested one fails later.
type CounterDatabase interface {
	Next(ctx context.Context, name string) (uint64, error)
}

type counterDatabase struct {
	db DatabaseHelper
}

// NewCounterDatabase initializes a new instance of counter database with the provided db connection
func NewCounterDatabase(db DatabaseHelper) CounterDatabase {
	return &counterDatabase{
		db: db,
	}
}

func (c *counterDatabase) Next(ctx context.Context, name string) (uint64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq uint64 `bson:"seq"`
	}
	err := c.db.Collection(counterName).FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}
