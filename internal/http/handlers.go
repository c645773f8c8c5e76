package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/thoughts-service/internal/domain"
	applog "github.com/tazhibayda/thoughts-service/internal/log"
	"github.com/tazhibayda/thoughts-service/internal/metrics"
	"github.com/tazhibayda/thoughts-service/internal/queue"
	"github.com/tazhibayda/thoughts-service/internal/repo"
	"go.uber.org/zap"
)

// ThoughtStore is the storage access layer as the handlers see it. *repo.Store implements it.
type ThoughtStore interface {
	ListRecent(ctx context.Context, limit int) ([]domain.Thought, error)
	Create(ctx context.Context, message string) (*domain.Thought, error)
	GetByID(ctx context.Context, id string) (*domain.Thought, error)
	IncrementHearts(ctx context.Context, id string) (*domain.Thought, error)
	DeleteByID(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

type Handler struct {
	Store        ThoughtStore
	Events       queue.Publisher
	Log          *zap.Logger
	LegacyStatus bool // report every failure as 400
}

func NewHandler(store ThoughtStore, pub queue.Publisher, legacyStatus bool) *Handler {
	if pub == nil {
		pub = queue.NewNoop()
	}
	return &Handler{Store: store, Events: pub, Log: applog.L(), LegacyStatus: legacyStatus}
}

// Root godoc
// @Summary Greeting
// @Produce plain
// @Success 200 {string} string "happy thoughts"
// @Router / [get]
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "happy thoughts")
}

// ListThoughts godoc
// @Summary Most recent thoughts
// @Description Up to 20 thoughts, newest first.
// @Tags thoughts
// @Produce json
// @Success 200 {object} Envelope{response=[]domain.Thought}
// @Failure 503 {object} Envelope
// @Router /thoughts [get]
func (h *Handler) ListThoughts(c *gin.Context) {
	items, err := h.Store.ListRecent(c.Request.Context(), domain.RecentLimit)
	if err != nil {
		h.fail(c, err, "Pardon, could not find any thoughts")
		return
	}
	ok(c, http.StatusOK, items, "Fetch successful")
}

// maxCreateBody caps POST /thoughts bodies; a 140 character message fits many times over.
const maxCreateBody = 4 << 10

type createThoughtReq struct {
	Message string `json:"message" example:"Feeling grateful for sunny mornings"`
}

// CreateThought godoc
// @Summary Post a thought
// @Tags thoughts
// @Accept json
// @Produce json
// @Param payload body createThoughtReq true "message, 5..140 characters"
// @Success 201 {object} Envelope{response=domain.Thought}
// @Failure 400 {object} Envelope
// @Failure 503 {object} Envelope
// @Router /thoughts [post]
func (h *Handler) CreateThought(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxCreateBody)
	var in createThoughtReq
	if err := c.ShouldBindJSON(&in); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errBadBody, err), "Pardon, could not save")
		return
	}
	t, err := h.Store.Create(c.Request.Context(), in.Message)
	if err != nil {
		h.fail(c, err, "Pardon, could not save")
		return
	}
	h.publish(c, queue.KeyThoughtCreated, queue.ThoughtCreated{ID: t.ID.Hex(), Message: t.Message, CreatedAt: t.CreatedAt})
	ok(c, http.StatusCreated, t, "Thought successfully saved")
}

// GetThought godoc
// @Summary Thought by id
// @Tags thoughts
// @Produce json
// @Param id path string true "thought id"
// @Success 200 {object} Envelope{response=domain.Thought}
// @Failure 404 {object} Envelope
// @Failure 503 {object} Envelope
// @Router /thoughts/{id} [get]
func (h *Handler) GetThought(c *gin.Context) {
	t, err := h.Store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Pardon, could not find this thought")
		return
	}
	ok(c, http.StatusOK, t, "Fetch successful")
}

// LikeThought godoc
// @Summary Add one heart
// @Tags thoughts
// @Produce json
// @Param id path string true "thought id"
// @Success 200 {object} Envelope{response=domain.Thought}
// @Failure 404 {object} Envelope
// @Failure 503 {object} Envelope
// @Router /thoughts/{id}/like [post]
func (h *Handler) LikeThought(c *gin.Context) {
	t, err := h.Store.IncrementHearts(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Pardon, could not update")
		return
	}
	h.publish(c, queue.KeyThoughtLiked, queue.ThoughtLiked{ID: t.ID.Hex(), Hearts: t.Hearts})
	ok(c, http.StatusOK, t, "Update successful")
}

// DeleteThought godoc
// @Summary Delete a thought
// @Tags thoughts
// @Produce json
// @Param id path string true "thought id"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 503 {object} Envelope
// @Router /thoughts/{id} [delete]
func (h *Handler) DeleteThought(c *gin.Context) {
	id := c.Param("id")
	if err := h.Store.DeleteByID(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Pardon, could not delete")
		return
	}
	if oid, err := repo.ParseID(id); err == nil {
		id = oid.Hex()
	}
	h.publish(c, queue.KeyThoughtDeleted, queue.ThoughtDeleted{ID: id})
	ok(c, http.StatusOK, gin.H{}, "Delete successful")
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// publish sends the event in the background; the response never waits on the broker.
func (h *Handler) publish(c *gin.Context, key string, event any) {
	ctx := context.WithoutCancel(c.Request.Context())
	reqID := c.GetString(requestIDKey)
	l := h.logger(c)
	go func() {
		status := "ok"
		if err := h.Events.Publish(ctx, key, event, reqID); err != nil {
			status = "error"
			l.Warn("publish event", zap.String("key", key), zap.Error(err))
		}
		metrics.EventsPublished.WithLabelValues(key, status).Inc()
	}()
}

func (h *Handler) logger(c *gin.Context) *zap.Logger {
	return applog.WithDD(c.Request.Context(), h.Log, zap.String("request_id", c.GetString(requestIDKey)))
}
