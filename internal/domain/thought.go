package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MessageMinLen = 5
	MessageMaxLen = 140
	RecentLimit   = 20 // size of the "most recent" window
)

// Thought is a short public post with a like counter.
// Field names on the wire and in the collection follow the layout clients already read.
type Thought struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Message   string             `bson:"message" json:"message" validate:"required,min=5,max=140"`
	Hearts    int                `bson:"hearts" json:"hearts" validate:"gte=0"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// NewThought builds an unsaved thought. Mongo keeps milliseconds, so createdAt is truncated
// to match what a later read returns.
func NewThought(message string, now time.Time) *Thought {
	return &Thought{
		Message:   strings.TrimSpace(message),
		Hearts:    0,
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}
}
