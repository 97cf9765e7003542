package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zeebo/xxh3"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/totegamma/livefyre"
	"github.com/totegamma/livefyre/internal/present/rest/presenter"
)

var tracer = otel.Tracer("livefyre/profile")

// Pinger asks Livefyre to pull a profile again. *api.Client implements it.
type Pinger interface {
	SyncUser(ctx context.Context, network *livefyre.Network, userID string) error
}

// Server answers Livefyre's profile pulls and accepts profile updates.
type Server struct {
	network  *livefyre.Network
	store    Store
	pinger   Pinger
	logger   *zap.Logger
	present  presenter.Presenter
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

type Option func(*Server)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithPinger makes PUT requests trigger a Livefyre refresh of the user.
func WithPinger(p Pinger) Option {
	return func(s *Server) { s.pinger = p }
}

// WithRegistry exports metrics to reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

func NewServer(network *livefyre.Network, store Store, opts ...Option) *Server {
	s := &Server{
		network: network,
		store:   store,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.present = presenter.New(s.logger)
	s.requests = promauto.With(s.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "livefyre",
		Subsystem: "profile",
		Name:      "requests_total",
		Help:      "Profile server requests by route and status code.",
	}, []string{"route", "code"})
	return s
}

// Echo returns an echo instance with middleware and routes registered.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware("livefyre-profile"))
	e.Use(s.countRequests)
	s.RegisterRoutes(e)
	return e
}

func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/profiles/:id", s.handleGet, s.requireSystemToken)
	e.PUT("/profiles/:id", s.handlePut, s.requireSystemToken)
	e.DELETE("/profiles/:id", s.handleDelete, s.requireSystemToken)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
}

func (s *Server) countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		code := c.Response().Status
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}
		s.requests.WithLabelValues(c.Path(), strconv.Itoa(code)).Inc()
		return err
	}
}

// requireSystemToken accepts the token from the lftoken query parameter or
// an "Authorization: lftoken <token>" header.
func (s *Server) requireSystemToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.QueryParam("lftoken")
		if token == "" {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if kind, value, ok := strings.Cut(auth, " "); ok && kind == "lftoken" {
				token = value
			}
		}
		if token == "" {
			return s.present.Forbidden(c, "missing lftoken")
		}
		if !s.network.ValidateSystemToken(token) {
			return s.present.Forbidden(c, "invalid lftoken")
		}
		return next(c)
	}
}

func etag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
}

func (s *Server) handleGet(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Profile.Server.Get")
	defer span.End()

	id := c.Param("id")
	p, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return s.present.NotFound(c, err.Error())
	}
	if err != nil {
		span.RecordError(err)
		return s.present.InternalError(c, err)
	}

	body, err := json.Marshal(p)
	if err != nil {
		return s.present.InternalError(c, err)
	}
	tag := etag(body)
	c.Response().Header().Set("ETag", tag)
	if c.Request().Header.Get("If-None-Match") == tag {
		return s.present.NotModified(c)
	}
	return c.JSONBlob(http.StatusOK, body)
}

func (s *Server) handlePut(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Profile.Server.Put")
	defer span.End()

	id := c.Param("id")
	var p Profile
	if err := c.Bind(&p); err != nil {
		return s.present.BadRequest(c, err)
	}
	if p.ID == "" {
		p.ID = id
	}
	if p.ID != id {
		return s.present.BadRequest(c, livefyre.InvalidArgumentError{Field: "id", Reason: "does not match path"})
	}

	if err := s.store.Put(ctx, p); err != nil {
		if errors.Is(err, livefyre.ErrInvalidArgument) {
			return s.present.BadRequest(c, err)
		}
		span.RecordError(err)
		return s.present.InternalError(c, err)
	}

	if s.pinger != nil {
		if err := s.pinger.SyncUser(ctx, s.network, id); err != nil {
			span.RecordError(err)
			s.logger.Warn("livefyre refresh failed", zap.String("userId", id), zap.Error(err))
		}
	}
	return s.present.NoContent(c)
}

func (s *Server) handleDelete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Profile.Server.Delete")
	defer span.End()

	if err := s.store.Delete(ctx, c.Param("id")); err != nil {
		span.RecordError(err)
		return s.present.InternalError(c, err)
	}
	return s.present.NoContent(c)
}
