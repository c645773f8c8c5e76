package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tazhibayda/thoughts-service/internal/domain"
	api "github.com/tazhibayda/thoughts-service/internal/http"
	"github.com/tazhibayda/thoughts-service/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore mirrors repo.Store semantics in memory so the handlers can be tested without Mongo.
type memStore struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]domain.Thought
	clock time.Time
	down  bool
}

func newMemStore() *memStore {
	return &memStore{
		items: make(map[primitive.ObjectID]domain.Thought),
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) unavailable(op string) error {
	return fmt.Errorf("%s: %w: %w", op, repo.ErrUnavailable, context.DeadlineExceeded)
}

func (m *memStore) ListRecent(_ context.Context, limit int) ([]domain.Thought, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, m.unavailable("list recent")
	}
	out := make([]domain.Thought, 0, len(m.items))
	for _, t := range m.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) Create(_ context.Context, message string) (*domain.Thought, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, m.unavailable("create")
	}
	m.clock = m.clock.Add(time.Second)
	t := domain.NewThought(message, m.clock)
	if err := repo.ValidateThought(t); err != nil {
		return nil, err
	}
	t.ID = primitive.NewObjectID()
	m.items[t.ID] = *t
	return t, nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*domain.Thought, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, m.unavailable("get")
	}
	t, ok := m.items[oid]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &t, nil
}

func (m *memStore) IncrementHearts(_ context.Context, id string) (*domain.Thought, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, m.unavailable("like")
	}
	t, ok := m.items[oid]
	if !ok {
		return nil, repo.ErrNotFound
	}
	t.Hearts++
	m.items[oid] = t
	return &t, nil
}

func (m *memStore) DeleteByID(_ context.Context, id string) error {
	oid, err := repo.ParseID(id)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return m.unavailable("delete")
	}
	if _, ok := m.items[oid]; !ok {
		return repo.ErrNotFound
	}
	delete(m.items, oid)
	return nil
}

func (m *memStore) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return m.unavailable("ping")
	}
	return nil
}

func (m *memStore) setDown(v bool) {
	m.mu.Lock()
	m.down = v
	m.mu.Unlock()
}

type published struct {
	Key   string
	Event any
	ReqID string
}

// recPub records published events; events arrive asynchronously.
type recPub struct {
	ch chan published
}

func newRecPub() *recPub { return &recPub{ch: make(chan published, 64)} }

func (p *recPub) Publish(_ context.Context, key string, event any, reqID string) error {
	p.ch <- published{Key: key, Event: event, ReqID: reqID}
	return nil
}

func (p *recPub) Close() error { return nil }

func (p *recPub) next(t *testing.T) published {
	t.Helper()
	select {
	case ev := <-p.ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event published")
		return published{}
	}
}

type testEnv struct {
	T      *testing.T
	Store  *memStore
	Pub    *recPub
	Router *gin.Engine
}

func newTestEnv(t *testing.T, legacy bool, rl api.Limiter) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := newMemStore()
	pub := newRecPub()
	h := api.NewHandler(store, pub, legacy)
	return &testEnv{T: t, Store: store, Pub: pub, Router: api.NewRouter(h, rl)}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	return serve(e.Router, method, path, body, nil)
}

func serve(h http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	h.ServeHTTP(w, req)
	return w
}

// envelope is the decoded response with the payload kept raw for a second decode.
type envelope struct {
	Success  bool            `json:"success"`
	Response json.RawMessage `json:"response"`
	Message  string          `json:"message"`
	Error    json.RawMessage `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body=%s", w.Body.String())
	return env
}

func decodeThought(t *testing.T, w *httptest.ResponseRecorder) domain.Thought {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.True(t, env.Success, "body=%s", w.Body.String())
	var th domain.Thought
	require.NoError(t, json.Unmarshal(env.Response, &th))
	return th
}

func decodeThoughts(t *testing.T, w *httptest.ResponseRecorder) []domain.Thought {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.True(t, env.Success, "body=%s", w.Body.String())
	var out []domain.Thought
	require.NoError(t, json.Unmarshal(env.Response, &out))
	return out
}
