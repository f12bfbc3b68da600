package databases

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/whisprnet/whispr-api/models"
)

const reportName = "reports"

// ErrNoDocument is returned by ReplaceOne methods when the filter matched
// nothing
var ErrNoDocument = errors.New("no matching document")

// ReportDatabase contains the methods to use with the report database.
// Lookups return (nil, nil) when the report does not exist; only
// ReplaceOne treats absence as an error.
type ReportDatabase interface {
	FindOne(ctx context.Context, id uint64) (*models.Report, error)
	FindAll(ctx context.Context) ([]models.Report, error)
	FindByStatus(ctx context.Context, status models.ReportStatus) ([]models.Report, error)
	FindBySubmitter(ctx context.Context, submitter models.Principal) ([]models.Report, error)
	InsertOne(ctx context.Context, report models.Report) error
	ReplaceOne(ctx context.Context, report models.Report) error
	CountByStatus(ctx context.Context, status models.ReportStatus) (int64, error)
}

type reportDatabase struct {
	db DatabaseHelper
}

// NewReportDatabase initializes a new instance of report database with the provided db connection
func NewReportDatabase(db DatabaseHelper) ReportDatabase {
	return &reportDatabase{
		db: db,
	}
}

func (c *reportDatabase) FindOne(ctx context.Context, id uint64) (*models.Report, error) {
	report := &models.Report{}
	err := c.db.Collection(reportName).FindOne(ctx, bson.M{"_id": id}).Decode(report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (c *reportDatabase) find(ctx context.Context, filter interface{}) ([]models.Report, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := c.db.Collection(reportName).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var reports []models.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *reportDatabase) FindAll(ctx context.Context) ([]models.Report, error) {
	return c.find(ctx, bson.D{})
}

func (c *reportDatabase) FindByStatus(ctx context.Context, status models.ReportStatus) ([]models.Report, error) {
	return c.find(ctx, bson.M{"status": status})
}

func (c *reportDatabase) FindBySubmitter(ctx context.Context, submitter models.Principal) ([]models.Report, error) {
	return c.find(ctx, bson.M{"submitterId": submitter})
}

func (c *reportDatabase) InsertOne(ctx context.Context, report models.Report) error {
	_, err := c.db.Collection(reportName).InsertOne(ctx, report)
	return err
}

func (c *reportDatabase) ReplaceOne(ctx context.Context, report models.Report) error {
	res, err := c.db.Collection(reportName).ReplaceOne(ctx, bson.M{"_id": report.ID}, report)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (c *reportDatabase) CountByStatus(ctx context.Context, status models.ReportStatus) (int64, error) {
	return c.db.Collection(reportName).CountDocuments(ctx, bson.M{"status": status})
}
