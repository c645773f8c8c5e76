package notify

import (
	"encoding/json"

	"github.com/tazhibayda/thoughts-service/internal/queue"
	"go.uber.org/zap"
)

// Sender turns thought events into notifications. For now a notification is a structured log line.
type Sender struct {
	Log *zap.Logger
}

func NewSender(l *zap.Logger) *Sender {
	if l == nil {
		l = zap.NewNop()
	}
	return &Sender{Log: l}
}

// Handle is a queue.Handler. Undecodable payloads are logged and dropped so they do not loop.
func (s *Sender) Handle(key string, body []byte) error {
	switch key {
	case queue.KeyThoughtCreated:
		var ev queue.ThoughtCreated
		if err := json.Unmarshal(body, &ev); err != nil {
			return s.drop(key, err)
		}
		s.Log.Info("new thought", zap.String("id", ev.ID), zap.String("message", ev.Message), zap.Time("created_at", ev.CreatedAt))
	case queue.KeyThoughtLiked:
		var ev queue.ThoughtLiked
		if err := json.Unmarshal(body, &ev); err != nil {
			return s.drop(key, err)
		}
		s.Log.Info("thought liked", zap.String("id", ev.ID), zap.Int("hearts", ev.Hearts))
	case queue.KeyThoughtDeleted:
		var ev queue.ThoughtDeleted
		if err := json.Unmarshal(body, &ev); err != nil {
			return s.drop(key, err)
		}
		s.Log.Info("thought deleted", zap.String("id", ev.ID))
	default:
		s.Log.Debug("ignoring event", zap.String("key", key))
	}
	return nil
}

func (s *Sender) drop(key string, err error) error {
	s.Log.Warn("dropping malformed event", zap.String("key", key), zap.Error(err))
	return nil
}
