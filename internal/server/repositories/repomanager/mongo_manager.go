package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

type MongoRepositoryManager struct {
	client *mongo.Client
	users  *users.MongoRepository
	notes  *notes.MongoRepository
}

// NewMongoRepositoryManager connects to dsn. The database named in the DSN
// path wins over dbName.
func NewMongoRepositoryManager(ctx context.Context, dsn, dbName string) (*MongoRepositoryManager, error) {
	cs, err := connstring.ParseAndValidate(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid mongo uri: %w", err)
	}
	if cs.Database != "" {
		dbName = cs.Database
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(dsn))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	return newMongoRepositoryManager(client.Database(dbName)), nil
}

func newMongoRepositoryManager(db *mongo.Database) *MongoRepositoryManager {
	return &MongoRepositoryManager{
		client: db.Client(),
		users:  users.NewMongoRepository(db.Collection(users.CollectionName)),
		notes:  notes.NewMongoRepository(db.Collection(notes.CollectionName)),
	}
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MongoRepositoryManager) Notes() notes.Repository {
	return m.notes
}

// Migrate creates the indexes. Mongo has no schema beyond that.
func (m *MongoRepositoryManager) Migrate(ctx context.Context) error {
	if err := m.users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := m.notes.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("notes indexes: %w", err)
	}
	return nil
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
