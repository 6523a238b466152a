package notes

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding notes.
const CollectionName = "notes"

type noteDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Title      string             `bson:"title"`
	Content    string             `bson:"content"`
	UserID     primitive.ObjectID `bson:"userId"`
	CreatedAt  time.Time          `bson:"createdAt"`
	ModifiedAt time.Time          `bson:"modifiedAt"`
}

func (d *noteDocument) toModel() *models.Note {
	return &models.Note{
		ID:         d.ID.Hex(),
		Title:      d.Title,
		Content:    d.Content,
		UserID:     d.UserID.Hex(),
		CreatedAt:  d.CreatedAt,
		ModifiedAt: d.ModifiedAt,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// EnsureIndexes creates the owner index every query filters on.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context, ownerID string) ([]*models.Note, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []*models.Note{}, nil
	}
	return r.find(ctx, bson.M{"userId": owner})
}

func (r *MongoRepository) Create(ctx context.Context, ownerID string, note *models.Note) (*models.Note, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id %q: %w", ownerID, err)
	}

	res, err := r.coll.InsertOne(ctx, noteDocument{
		Title:      note.Title,
		Content:    note.Content,
		UserID:     owner,
		CreatedAt:  note.CreatedAt,
		ModifiedAt: note.ModifiedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("db error: unexpected id type %T", res.InsertedID)
	}
	note.ID = id.Hex()
	note.UserID = ownerID

	return note, nil
}

func (r *MongoRepository) Update(ctx context.Context, ownerID, noteID string, upd Update) (*models.Note, error) {
	filter, ok := ownedFilter(ownerID, noteID)
	if !ok {
		return nil, common.ErrorNotFound
	}

	change := bson.M{"$set": bson.M{
		"title":      upd.Title,
		"content":    upd.Content,
		"modifiedAt": upd.ModifiedAt,
	}}

	var doc noteDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, change,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc.toModel(), nil
}

func (r *MongoRepository) Delete(ctx context.Context, ownerID, noteID string) error {
	filter, ok := ownedFilter(ownerID, noteID)
	if !ok {
		return common.ErrorNotFound
	}

	var doc noteDocument
	err := r.coll.FindOneAndDelete(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *MongoRepository) Search(ctx context.Context, ownerID, query string) ([]*models.Note, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []*models.Note{}, nil
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return r.find(ctx, bson.M{
		"userId": owner,
		"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"content": pattern},
		},
	})
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]*models.Note, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	var docs []noteDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	result := make([]*models.Note, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toModel())
	}
	return result, nil
}

// ownedFilter matches one note of one owner. ok is false when either id
// cannot be a Mongo id, in which case no document can match.
func ownedFilter(ownerID, noteID string) (bson.M, bool) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, false
	}
	id, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": id, "userId": owner}, true
}
