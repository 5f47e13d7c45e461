package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/fieldscout/meridian/internal/enginerr"
	"github.com/fieldscout/meridian/internal/models"
)

// Engine is the matching API surface the server exposes over HTTP.
type Engine interface {
	Search(ctx context.Context, filters models.SearchFilters) (*models.SearchPage, error)
	Stats(ctx context.Context) (*models.DashboardStats, error)
	Specialties(ctx context.Context, serviceType models.ServiceType) ([]models.Specialty, error)
}

// Pinger checks a dependency for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server translates HTTP requests into engine calls and engine failures
// into status codes.
type Server struct {
	log    *slog.Logger
	engine Engine
	db     Pinger
}

// Defaults applied when the corresponding query parameter is omitted.
const (
	defaultMaxDistanceKm = 50
	defaultPageSize      = 20
)

// New creates a Server for the given engine. db may be nil, in which case
// the health endpoint skips the database check.
func New(log *slog.Logger, engine Engine, db Pinger) *Server {
	return &Server{log: log, engine: engine, db: db}
}

// Register attaches the API handlers to the given mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/providers/search", s.handleSearch)
	mux.HandleFunc("GET /api/v1/stats", s.handleStats)
	mux.HandleFunc("GET /api/v1/specialties", s.handleSpecialties)
	mux.HandleFunc("GET /healthz", s.handleHealth)
}

func (s *Server) handleSearch(writer http.ResponseWriter, req *http.Request) {
	filters, err := parseSearchFilters(req)
	if err != nil {
		s.writeError(req.Context(), writer, err)
		return
	}

	page, err := s.engine.Search(req.Context(), filters)
	if err != nil {
		s.writeError(req.Context(), writer, err)
		return
	}

	s.writeJSON(req.Context(), writer, http.StatusOK, page)
}

func (s *Server) handleStats(writer http.ResponseWriter, req *http.Request) {
	stats, err := s.engine.Stats(req.Context())
	if err != nil {
		s.writeError(req.Context(), writer, err)
		return
	}

	s.writeJSON(req.Context(), writer, http.StatusOK, stats)
}

func (s *Server) handleSpecialties(writer http.ResponseWriter, req *http.Request) {
	serviceType := models.ServiceType(req.URL.Query().Get("type"))
	if !serviceType.Valid() {
		s.writeError(req.Context(), writer,
			fmt.Errorf("%w: unknown provider type %q", enginerr.ErrInvalidFilters, serviceType))
		return
	}

	specialties, err := s.engine.Specialties(req.Context(), serviceType)
	if err != nil {
		s.writeError(req.Context(), writer, err)
		return
	}
	if specialties == nil {
		specialties = []models.Specialty{}
	}

	s.writeJSON(req.Context(), writer, http.StatusOK, specialties)
}

func (s *Server) handleHealth(writer http.ResponseWriter, req *http.Request) {
	status, body := http.StatusOK, "OK"
	if s.db != nil {
		if err := s.db.Ping(req.Context()); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
	}
	writer.WriteHeader(status)
	if _, err := writer.Write([]byte(body)); err != nil {
		s.log.ErrorContext(req.Context(), "failed to write reply", "error", err)
	}
}

// parseSearchFilters builds SearchFilters from query parameters.
// Unparseable numeric parameters map to InvalidFilters; semantic checks
// stay with the engine.
func parseSearchFilters(req *http.Request) (models.SearchFilters, error) {
	query := req.URL.Query()

	filters := models.SearchFilters{
		Type: models.ServiceType(query.Get("type")),
		Origin: models.AddressQuery{
			Postcode: query.Get("postcode"),
			Country:  query.Get("country"),
		},
		MaxDistanceKm: defaultMaxDistanceKm,
		Page:          1,
		PageSize:      defaultPageSize,
	}

	if raw := query.Get("max_distance_km"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.SearchFilters{}, fmt.Errorf("%w: max_distance_km %q is not a number", enginerr.ErrInvalidFilters, raw)
		}
		filters.MaxDistanceKm = value
	}

	if raw := query.Get("page"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return models.SearchFilters{}, fmt.Errorf("%w: page %q is not an integer", enginerr.ErrInvalidFilters, raw)
		}
		filters.Page = value
	}

	if raw := query.Get("page_size"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return models.SearchFilters{}, fmt.Errorf("%w: page_size %q is not an integer", enginerr.ErrInvalidFilters, raw)
		}
		filters.PageSize = value
	}

	if raw := query.Get("specialties"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filters.SpecialtyIDs = append(filters.SpecialtyIDs, id)
			}
		}
	}

	return filters, nil
}

type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

func (s *Server) writeError(ctx context.Context, writer http.ResponseWriter, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(ctx, "Request failed", "status", status, "error", err)
	} else {
		s.log.DebugContext(ctx, "Request rejected", "status", status, "error", err)
	}

	s.writeJSON(ctx, writer, status, errorResponse{
		Error:     err.Error(),
		Retryable: enginerr.Retryable(err),
	})
}

func (s *Server) writeJSON(ctx context.Context, writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		s.log.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// statusForError maps the engine failure taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, enginerr.ErrInvalidQuery), errors.Is(err, enginerr.ErrInvalidFilters):
		return http.StatusBadRequest
	case errors.Is(err, enginerr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, enginerr.ErrGeocodeUnavailable), errors.Is(err, enginerr.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return 499 // client closed request
	default:
		return http.StatusInternalServerError
	}
}
