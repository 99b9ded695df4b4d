// Package server exposes the call generator over HTTP.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"synth911/errors"
	"synth911/formatter"
	"synth911/generator"
	"synth911/locale"
	"synth911/metrics"
	"synth911/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// GenerateRequest is the JSON body of POST /api/v1/generate.
type GenerateRequest struct {
	NumRecords          int       `json:"num_records" binding:"required,min=1,max=1000000"`
	StartDate           string    `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate             string    `json:"end_date" binding:"required,datetime=2006-01-02"`
	NumNames            int       `json:"num_names" binding:"omitempty,min=1,max=1000"`
	Locale              string    `json:"locale"`
	Agencies            []string  `json:"agencies"`
	AgencyProbabilities []float64 `json:"agency_probabilities"`
	Seed                *uint64   `json:"seed"`
}

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error string `json:"error"`
	// Field names the offending request field when known.
	Field  string   `json:"field,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// LocalesResponse lists the supported locales.
type LocalesResponse struct {
	Default   string   `json:"default"`
	Supported []string `json:"supported"`
}

// Server handles the HTTP API.
type Server struct {
	generator *generator.Generator
	logger    *zap.Logger
	// defaultNames is used when a request leaves num_names unset.
	defaultNames int
}

// New creates a server backed by gen.
func New(gen *generator.Generator, logger *zap.Logger, defaultNames int) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultNames <= 0 {
		defaultNames = 8
	}
	return &Server{generator: gen, logger: logger, defaultNames: defaultNames}
}

// Routes configures all the routes for the application
func (s *Server) Routes() *gin.Engine {
	router := gin.New()
	router.Use(s.requestLogger())
	router.Use(gin.Recovery())

	router.GET("/health", s.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/generate", s.Generate)
		v1.GET("/locales", s.Locales)
	}
	return router
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Health returns the health status of the application
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Timestamp: time.Now().UTC()})
}

// Locales returns the supported locale identifiers
func (s *Server) Locales(c *gin.Context) {
	c.JSON(http.StatusOK, LocalesResponse{Default: locale.Default, Supported: locale.Supported()})
}

// Generate builds a call table from the request body. The table is returned
// as a JSON array of rows, or as CSV when format=csv.
func (s *Server) Generate(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "csv" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "format must be one of: json, csv", Field: "format"})
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingError(err))
		return
	}

	cfg := models.Config{
		NumRecords:          req.NumRecords,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		NumNames:            req.NumNames,
		Locale:              req.Locale,
		Agencies:            req.Agencies,
		AgencyProbabilities: req.AgencyProbabilities,
		Seed:                req.Seed,
	}
	if cfg.NumNames == 0 {
		cfg.NumNames = s.defaultNames
	}
	if cfg.Locale == "" {
		cfg.Locale = locale.Default
	}

	table, err := s.generator.Generate(cfg)
	if err != nil {
		var cfgErr *errors.ConfigurationError
		if stderrors.As(err, &cfgErr) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: cfgErr.Error(), Field: cfgErr.Field})
			return
		}
		s.logger.Error("generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "generation failed"})
		return
	}

	c.Header("X-Run-ID", table.RunID)
	c.Header("X-Seed", strconv.FormatUint(table.Seed, 10))
	c.Header("X-Locale", table.Locale)
	for _, w := range table.Warnings {
		c.Writer.Header().Add("X-Warning", w.Error())
	}

	if format == "csv" {
		c.Header("Content-Disposition", `attachment; filename="computer_aided_dispatch.csv"`)
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if err := formatter.WriteCSV(c.Writer, table.Records); err != nil {
			s.logger.Error("writing CSV response", zap.Error(err))
		}
		return
	}

	c.Header("Content-Type", "application/json; charset=utf-8")
	c.Status(http.StatusOK)
	if err := formatter.WriteJSON(c.Writer, table.Records); err != nil {
		s.logger.Error("writing JSON response", zap.Error(err))
	}
}

// bindingError turns request validation failures into a response naming
// the offending fields.
func bindingError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return ErrorResponse{Error: "invalid request body: " + err.Error()}
	}
	resp := ErrorResponse{Error: "invalid request"}
	for _, fe := range verrs {
		resp.Fields = append(resp.Fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return resp
}
