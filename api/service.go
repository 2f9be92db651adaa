package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Drolfothesgnir/stackmark/cache"
	"github.com/Drolfothesgnir/stackmark/util"
	"github.com/gin-gonic/gin"
)

const (
	// api routes
	PingURL           = "/ping"
	RenderURL         = "/render"
	DocumentRenderURL = "/documents/render"

	RequestIDHeader = "X-Request-ID"
)

var (
	// api errors
	ErrInvalidParams   = errors.New("invalid params")
	ErrInputTooLarge   = errors.New("input is too large")
	ErrInvalidDocument = errors.New("invalid document")
	ErrRenderFailed    = errors.New("failed to render input")
)

type Service struct {
	config util.Config
	cache  cache.Store
	server *http.Server
	router *gin.Engine
}

// Returns new service instance with provided config and render cache.
// store may be nil, then nothing is cached.
func NewService(config util.Config, store cache.Store) (*Service, error) {
	if err := RegisterValidators(); err != nil {
		return nil, fmt.Errorf("cannot register validators: %w", err)
	}

	addr, err := config.ListenAddress()
	if err != nil {
		return nil, fmt.Errorf("cannot resolve listen address: %w", err)
	}

	service := &Service{
		config: config,
		cache:  store,
	}

	server := &http.Server{
		Addr: addr,
	}

	// caps how long a client can take to send just the headers (blocks slowloris).
	server.ReadHeaderTimeout = 5 * time.Second
	// caps time to read the full request (incl. body).
	server.ReadTimeout = 10 * time.Second
	// caps time you’ll spend writing the response (no “forever hanging” clients)
	server.WriteTimeout = 15 * time.Second
	// how long to keep idle keep-alive connections open.
	server.IdleTimeout = 60 * time.Second

	service.setupRouter(server)

	service.server = server

	return service, nil
}

// Start runs the HTTP server
func (service *Service) Start() error {
	return service.server.ListenAndServe()
}

func (service *Service) Shutdown(ctx context.Context) error {
	return service.server.Shutdown(ctx)
}
