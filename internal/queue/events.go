package queue

import "time"

// Routing keys on the thoughts topic exchange.
const (
	KeyThoughtCreated = "thought.created"
	KeyThoughtLiked   = "thought.liked"
	KeyThoughtDeleted = "thought.deleted"
)

type ThoughtCreated struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type ThoughtLiked struct {
	ID     string `json:"id"`
	Hearts int    `json:"hearts"`
}

type ThoughtDeleted struct {
	ID string `json:"id"`
}
