package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// NewRouter wires the thoughts routes. rl may be nil to disable rate limiting of writes.
// X-Forwarded-For is only honored when the peer is one of trustedProxies (IPs or CIDRs).
func NewRouter(h *Handler, rl Limiter, trustedProxies ...string) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		h.Log.Warn("invalid trusted proxies, trusting none", zap.Strings("proxies", trustedProxies), zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Tracing())
	r.Use(Metrics())
	r.Use(AccessLog(h.Log))

	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	writes := []gin.HandlerFunc{}
	if rl != nil {
		writes = append(writes, RateLimit(rl, h.Log))
	}

	api := r.Group("/thoughts")
	{
		api.GET("", h.ListThoughts)
		api.POST("", append(writes, h.CreateThought)...)
		api.GET("/:id", h.GetThought)
		api.POST("/:id/like", append(writes, h.LikeThought)...)
		api.DELETE("/:id", append(writes, h.DeleteThought)...)
	}
	return r
}

// WithCORS wraps the engine so browsers on origins may call it, preflights included.
func WithCORS(next http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})(next)
}
