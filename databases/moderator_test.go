package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/natan-gtecnologia/admin-panel-sub000/config"
	"github.com/natan-gtecnologia/admin-panel-sub000/databases"
	"github.com/natan-gtecnologia/admin-panel-sub000/databases/mocks"
	"github.com/natan-gtecnologia/admin-panel-sub000/models"
)

func TestNewModeratorDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	moderatorDB := databases.NewModeratorDatabase(db)

	assert.NotEmpty(t, moderatorDB)
}

func TestModeratorDatabase_FindOne(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Moderator)
		arg.Email = "mocked-moderator@example.com"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "moderators").Return(collectionHelper)

	// Create new database with mocked Database interface
	moderatorDba := databases.NewModeratorDatabase(dbHelper)

	// Call method with defined filter, that in our mocked function returns
	// mocked-error
	moderator, err := moderatorDba.FindOne(context.Background(), bson.M{"error": true})

	assert.Empty(t, moderator)
	assert.EqualError(t, err, "mocked-error")

	// Now call the same function with different filter for correct result
	moderator, err = moderatorDba.FindOne(context.Background(), bson.M{"error": false})

	assert.Equal(t, "mocked-moderator@example.com", moderator.Email)
	assert.NoError(t, err)
}
