// Package api exposes extraction, review, transactions and reports over HTTP.
package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/history"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/jobs"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/report"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/review"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/store"
)

// Version is reported by the health endpoint.
const Version = "2.0.0"

// maxUploadSize bounds request bodies, uploads included.
const maxUploadSize = 32 << 20

// Server holds the collaborators behind the HTTP handlers.
type Server struct {
	repo      store.Repository
	reviews   *review.Registry
	history   *history.Store
	publisher jobs.Publisher
	jobs      jobs.Store
	generator report.Generator
	log       zerolog.Logger

	// Now is the clock used for report generation.
	Now func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithJobs enables asynchronous extraction.
func WithJobs(publisher jobs.Publisher, store jobs.Store) Option {
	return func(s *Server) {
		s.publisher = publisher
		s.jobs = store
	}
}

// WithHistory replaces the default report history.
func WithHistory(h *history.Store) Option {
	return func(s *Server) { s.history = h }
}

// WithReviews replaces the default candidate registry.
func WithReviews(r *review.Registry) Option {
	return func(s *Server) { s.reviews = r }
}

// WithGenerator replaces the report generator.
func WithGenerator(g report.Generator) Option {
	return func(s *Server) { s.generator = g }
}

// NewServer creates a server over repo.
func NewServer(repo store.Repository, log zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		repo:    repo,
		reviews: review.NewRegistry(),
		history: history.New(history.DefaultLimit),
		log:     log,
		Now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// App builds the fiber application with every route registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "smart-finance-tracker",
		BodyLimit:             maxUploadSize,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
		Immutable:             true,
	})

	app.Use(fiberrecover.New(fiberrecover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			s.log.Error().
				Interface("error", e).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("Panic recovered")
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(requestLogger(s.log))

	s.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (s *Server) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/health", HandleHealth)
	api.Post("/extract", s.handleExtract)
	api.Get("/jobs/:jobID", s.handleGetJob)

	user := api.Group("/users/:userID")
	user.Post("/extract", s.handleExtract)
	user.Get("/jobs", s.handleListJobs)

	user.Get("/transactions", s.handleListTransactions)
	user.Post("/transactions", s.handleCreateTransactions)
	user.Put("/transactions/:id", s.handleUpdateTransaction)
	user.Delete("/transactions/:id", s.handleDeleteTransaction)

	user.Get("/candidates", s.handleListCandidates)
	user.Post("/candidates/merge", s.handleMergeCandidates)
	user.Put("/candidates/:id", s.handleEditCandidate)
	user.Delete("/candidates/:id", s.handleDeleteCandidate)

	user.Get("/reports", s.handleListReports)
	user.Post("/reports", s.handleCreateReport)
	user.Delete("/reports", s.handleClearReports)
	user.Get("/reports/:reportID/download", s.handleDownloadReport)
}

// handleError renders every error as {success:false,error}.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		s.log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
	}
	return writeError(c, code, msg)
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Success: false, Error: msg})
}
