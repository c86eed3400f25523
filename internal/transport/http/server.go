// Package http provides the HTTP server of the site backend.
package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/teconavi/alitaramdemo2/internal/hub"
	"github.com/teconavi/alitaramdemo2/internal/metrics"
	"github.com/teconavi/alitaramdemo2/internal/service"
	v1 "github.com/teconavi/alitaramdemo2/internal/transport/http/v1"
)

// Server is the public HTTP server.
type Server struct {
	echo    *echo.Echo
	hub     *hub.Hub
	service *service.Service
}

// NewServer creates the echo server with middleware, health, metrics and the v1 API.
func NewServer(svc *service.Service, h *hub.Hub, m *metrics.Metrics, log logrus.FieldLogger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = v1.NewValidator()

	// Middleware
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:    e,
		hub:     h,
		service: svc,
	}

	e.GET("/health", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	v1.NewHandler(svc).RegisterRoutes(e)

	return s
}

// Echo exposes the router so other transports can mount routes.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"connections": s.hub.ConnectionCount(),
		"sessions":    s.service.SessionCount(),
	})
}

func requestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request failed")
				return nil
			}
			entry.Debug("request served")
			return nil
		},
	})
}
