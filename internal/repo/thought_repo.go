package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tazhibayda/thoughts-service/internal/domain"
	"github.com/tazhibayda/thoughts-service/internal/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// ParseID turns a path segment into an ObjectID. Anything malformed is reported as ErrNotFound.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q is not a valid id", ErrNotFound, id)
	}
	return oid, nil
}

// ListRecent returns up to limit thoughts, newest first. limit is clamped to domain.RecentLimit.
func (s *Store) ListRecent(ctx context.Context, limit int) (out []domain.Thought, err error) {
	if limit <= 0 || limit > domain.RecentLimit {
		limit = domain.RecentLimit
	}
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.thought.list_recent", tracer.Tag("limit", limit))
	defer func() { observe(sp, "list_recent", err); sp.Finish() }()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cur, err := s.colThoughts.Find(ctx, bson.M{},
		options.Find().SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, classify("list recent", err)
	}
	defer cur.Close(ctx)

	out = make([]domain.Thought, 0, limit)
	for cur.Next(ctx) {
		var t domain.Thought
		if err := cur.Decode(&t); err != nil {
			return nil, fmt.Errorf("decode thought: %w", err)
		}
		out = append(out, t)
	}
	if err := cur.Err(); err != nil {
		return nil, classify("list recent", err)
	}
	return out, nil
}

// Create validates and stores a new thought with zero hearts.
func (s *Store) Create(ctx context.Context, message string) (t *domain.Thought, err error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.thought.insert")
	defer func() { observe(sp, "create", err); sp.Finish() }()

	t = domain.NewThought(message, time.Now())
	if err := ValidateThought(t); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.colThoughts.InsertOne(ctx, t)
	if err != nil {
		return nil, classify("create", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return t, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (t *domain.Thought, err error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.thought.find", tracer.Tag("thought_id", id))
	defer func() { observe(sp, "get", err); sp.Finish() }()

	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out domain.Thought
	if err := s.colThoughts.FindOne(ctx, bson.M{"_id": oid}).Decode(&out); err != nil {
		return nil, classify("get", err)
	}
	return &out, nil
}

// IncrementHearts adds exactly one heart with a single $inc, so concurrent likes never get lost.
func (s *Store) IncrementHearts(ctx context.Context, id string) (t *domain.Thought, err error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.thought.like", tracer.Tag("thought_id", id))
	defer func() { observe(sp, "like", err); sp.Finish() }()

	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out domain.Thought
	err = s.colThoughts.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"hearts": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return nil, classify("like", err)
	}
	return &out, nil
}

// DeleteByID removes the thought for good. Deleting twice reports ErrNotFound.
func (s *Store) DeleteByID(ctx context.Context, id string) (err error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.thought.delete", tracer.Tag("thought_id", id))
	defer func() { observe(sp, "delete", err); sp.Finish() }()

	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.colThoughts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return classify("delete", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type tagger interface {
	SetTag(key string, value interface{})
}

// observe records the outcome of a storage call on the metrics and the span.
func observe(sp tagger, op string, err error) {
	outcome := "ok"
	var ve *ValidationError
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case errors.As(err, &ve):
		outcome = "invalid"
	case isTimeout(err):
		outcome = "timeout"
	default:
		outcome = "error"
	}
	metrics.StoreOps.WithLabelValues(op, outcome).Inc()
	if outcome == "timeout" || outcome == "error" {
		sp.SetTag("error", err)
	}
}
