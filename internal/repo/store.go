package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	thoughtsCollection = "thoughts"
	DefaultOpTimeout   = 5 * time.Second
)

type Store struct {
	Client      *mongo.Client
	DB          *mongo.Database
	colThoughts *mongo.Collection
	opTimeout   time.Duration
}

// NewStore connects, pings and returns a store whose every call is bounded by opTimeout.
// The client is meant to live for the whole process.
func NewStore(ctx context.Context, uri, dbname string, opTimeout time.Duration) (*Store, error) {
	if opTimeout <= 0 {
		opTimeout = DefaultOpTimeout
	}
	cli, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetRetryWrites(true).
		SetMaxPoolSize(50).
		SetServerSelectionTimeout(opTimeout),
	)
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx, nil); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, err
	}
	db := cli.Database(dbname)
	return &Store{
		Client:      cli,
		DB:          db,
		colThoughts: db.Collection(thoughtsCollection),
		opTimeout:   opTimeout,
	}, nil
}

// DatabaseFromURI returns the database named in the uri path, or def.
func DatabaseFromURI(uri, def string) string {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil || cs.Database == "" {
		return def
	}
	return cs.Database
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error { return s.Client.Disconnect(ctx) }

// EnsureIndexes creates the createdAt index that keeps ListRecent cheap as the collection grows.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.colThoughts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
	})
	return err
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}
