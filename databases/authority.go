package databases

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/whisprnet/whispr-api/models"
)

const authorityName = "authorities"

// AuthorityDatabase contains the methods to use with the authority
// registry. Membership in this collection is the authorization check for
// every authority-only operation.
type AuthorityDatabase interface {
	FindOne(ctx context.Context, id models.Principal) (*models.Authority, error)
	Exists(ctx context.Context, id models.Principal) (bool, error)
	Save(ctx context.Context, authority models.Authority) error
}

type authorityDatabase struct {
	db DatabaseHelper
}

// NewAuthorityDatabase initializes a new instance of authority database with the provided db connection
func NewAuthorityDatabase(db DatabaseHelper) AuthorityDatabase {
	return &authorityDatabase{
		db: db,
	}
}

func (a *authorityDatabase) FindOne(ctx context.Context, id models.Principal) (*models.Authority, error) {
	authority := &models.Authority{}
	err := a.db.Collection(authorityName).FindOne(ctx, bson.M{"_id": id}).Decode(authority)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return authority, nil
}

func (a *authorityDatabase) Exists(ctx context.Context, id models.Principal) (bool, error) {
	count, err := a.db.Collection(authorityName).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save upserts the full authority record keyed by principal
func (a *authorityDatabase) Save(ctx context.Context, authority models.Authority) error {
	opts := options.Replace().SetUpsert(true)
	_, err := a.db.Collection(authorityName).ReplaceOne(ctx, bson.M{"_id": authority.ID}, authority, opts)
	return err
}
