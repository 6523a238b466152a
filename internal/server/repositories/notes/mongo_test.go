package notes

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func noteDoc(id, owner primitive.ObjectID, title, content string, at time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "content", Value: content},
		{Key: "userId", Value: owner},
		{Key: "createdAt", Value: at},
		{Key: "modifiedAt", Value: at},
	}
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	owner := primitive.NewObjectID()

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoRepository(mt.Coll)

		n, err := repo.Create(context.Background(), owner.Hex(), &models.Note{Title: "Groceries", Content: "milk, eggs", CreatedAt: at, ModifiedAt: at})
		require.NoError(mt, err)
		_, err = primitive.ObjectIDFromHex(n.ID)
		assert.NoError(mt, err)
		assert.Equal(mt, owner.Hex(), n.UserID)
	})

	mt.Run("create with bad owner", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)

		_, err := repo.Create(context.Background(), "nope", &models.Note{Title: "Groceries", Content: "milk, eggs"})
		assert.Error(mt, err)
	})

	mt.Run("list", func(mt *mtest.T) {
		id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gophnotes.notes", mtest.FirstBatch,
			noteDoc(id1, owner, "Groceries", "milk, eggs", at),
			noteDoc(id2, owner, "Todo list", "call bob", at.Add(time.Minute)),
		))
		repo := NewMongoRepository(mt.Coll)

		got, err := repo.List(context.Background(), owner.Hex())
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, id1.Hex(), got[0].ID)
		assert.Equal(mt, "Todo list", got[1].Title)
		assert.Equal(mt, owner.Hex(), got[1].UserID)
	})

	mt.Run("list empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gophnotes.notes", mtest.FirstBatch))
		repo := NewMongoRepository(mt.Coll)

		got, err := repo.List(context.Background(), owner.Hex())
		require.NoError(mt, err)
		assert.NotNil(mt, got)
		assert.Empty(mt, got)
	})

	mt.Run("list with bad owner", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)

		got, err := repo.List(context.Background(), "nope")
		require.NoError(mt, err)
		assert.Empty(mt, got)
	})

	mt.Run("update", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		later := at.Add(time.Hour)
		doc := noteDoc(id, owner, "Groceries v2", "milk, eggs, bread", at)
		doc[5] = bson.E{Key: "modifiedAt", Value: later}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: doc}))
		repo := NewMongoRepository(mt.Coll)

		n, err := repo.Update(context.Background(), owner.Hex(), id.Hex(), Update{Title: "Groceries v2", Content: "milk, eggs, bread", ModifiedAt: later})
		require.NoError(mt, err)
		assert.Equal(mt, "Groceries v2", n.Title)
		assert.True(mt, later.Equal(n.ModifiedAt))
		assert.True(mt, at.Equal(n.CreatedAt))
	})

	mt.Run("update not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		repo := NewMongoRepository(mt.Coll)

		_, err := repo.Update(context.Background(), owner.Hex(), primitive.NewObjectID().Hex(), Update{Title: "abc", Content: "abcde"})
		assert.ErrorIs(mt, err, common.ErrorNotFound)
	})

	mt.Run("update malformed id", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)

		_, err := repo.Update(context.Background(), owner.Hex(), "123", Update{Title: "abc", Content: "abcde"})
		assert.ErrorIs(mt, err, common.ErrorNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: noteDoc(id, owner, "Groceries", "milk, eggs", at)}))
		repo := NewMongoRepository(mt.Coll)

		assert.NoError(mt, repo.Delete(context.Background(), owner.Hex(), id.Hex()))
	})

	mt.Run("delete not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		repo := NewMongoRepository(mt.Coll)

		err := repo.Delete(context.Background(), owner.Hex(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, common.ErrorNotFound)
	})

	mt.Run("delete db error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom"}))
		repo := NewMongoRepository(mt.Coll)

		err := repo.Delete(context.Background(), owner.Hex(), primitive.NewObjectID().Hex())
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, common.ErrorNotFound)
	})

	mt.Run("search", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gophnotes.notes", mtest.FirstBatch,
			noteDoc(id, owner, "Groceries", "milk, eggs", at),
		))
		repo := NewMongoRepository(mt.Coll)

		got, err := repo.Search(context.Background(), owner.Hex(), "MILK")
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, id.Hex(), got[0].ID)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoRepository(mt.Coll)

		assert.NoError(mt, repo.EnsureIndexes(context.Background()))
	})
}
