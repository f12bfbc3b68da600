package databases

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/whisprnet/whispr-api/models"
)

const userName = "users"

// UserDatabase contains the methods to use with the user database.
// FindOne returns (nil, nil) when the user does not exist.
type UserDatabase interface {
	FindOne(ctx context.Context, id models.Principal) (*models.User, error)
	Save(ctx context.Context, user models.User) error
}

type userDatabase struct {
	db DatabaseHelper
}

// NewUserDatabase initializes a new instance of user database with the provided db connection
func NewUserDatabase(db DatabaseHelper) UserDatabase {
	return &userDatabase{
		db: db,
	}
}

func (u *userDatabase) FindOne(ctx context.Context, id models.Principal) (*models.User, error) {
	user := &models.User{}
	err := u.db.Collection(userName).FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Save upserts the full user record keyed by principal
func (u *userDatabase) Save(ctx context.Context, user models.User) error {
	opts := options.Replace().SetUpsert(true)
	_, err := u.db.Collection(userName).ReplaceOne(ctx, bson.M{"_id": user.ID}, user, opts)
	return err
}
