package http

import (
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

const serviceName = "thoughts-service"

// Tracing starts a Datadog span per request. Without a running tracer the spans are no-ops.
func Tracing() gin.HandlerFunc {
	return gintrace.Middleware(serviceName)
}
