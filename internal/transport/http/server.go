package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/pairchat-server/internal/config"
	"github.com/vovakirdan/pairchat-server/internal/core"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer builds the HTTP server.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(hub, cfg, logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter serves /ws directly and hands every other path to the gin
// engine. gin refuses to hijack a connection once a status is written, so
// the WebSocket upgrade stays outside of it.
func NewRouter(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.ServeMux {
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, cfg, logger))
	mux.Handle("/", newAPIRouter(hub, logger))
	return mux
}

func newAPIRouter(hub *core.Hub, logger *zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)
	router.GET("/api/stats", statsHandler(hub, logger))

	return router
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

func statsHandler(hub *core.Hub, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := hub.Stats(c.Request.Context())
		if err != nil {
			logger.Warn().Err(err).Msg("stats unavailable")
			c.JSON(stdhttp.StatusServiceUnavailable, ErrorResponse{Error: "hub unavailable"})
			return
		}
		c.JSON(stdhttp.StatusOK, stats)
	}
}
