package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound    = errors.New("thought not found")
	ErrUnavailable = errors.New("storage unavailable")
)

// FieldError describes one rejected field, shaped like the per-path errors clients already parse.
type FieldError struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Value   any    `json:"value"`
}

type ValidationError struct {
	Fields map[string]FieldError
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k].Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// classify maps driver errors onto ErrNotFound / ErrUnavailable. Bad data is neither and is returned as is.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if isDataError(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	// timeouts, network drops and server-side command failures all mean the store let us down
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// isDataError reports errors caused by the documents themselves rather than by the store.
func isDataError(err error) bool {
	var de *bsoncodec.DecodeError
	var vde bsoncodec.ValueDecoderError
	return mongo.IsDuplicateKeyError(err) || errors.As(err, &de) || errors.As(err, &vde)
}

// isTimeout reports whether err came from a storage call running out of time.
func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err)
}
