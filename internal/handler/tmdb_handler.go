package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-database-service/internal/tmdb"
)

// TMDBClient is the TMDB proxy surface.
type TMDBClient interface {
	SearchPerson(ctx context.Context, query string) (json.RawMessage, error)
	PersonDetails(ctx context.Context, id, appendTo string) (json.RawMessage, error)
	MovieDetails(ctx context.Context, id, appendTo string) (json.RawMessage, error)
	MoviePosters(ctx context.Context, query string) ([]tmdb.Poster, error)
}

// TMDBHandler relays a handful of TMDB endpoints.
type TMDBHandler struct {
	client TMDBClient
}

// NewTMDBHandler creates a new TMDBHandler.
func NewTMDBHandler(client TMDBClient) *TMDBHandler {
	return &TMDBHandler{client: client}
}

// SearchPerson searches TMDB people.
// @Summary Search TMDB people
// @Tags tmdb
// @Produce json
// @Param query query string true "Search text"
// @Success 200 {object} object
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /tmdb/person [get]
func (h *TMDBHandler) SearchPerson(c fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		return badRequest(c, "query is required")
	}
	raw, err := h.client.SearchPerson(c.Context(), query)
	return h.relay(c, raw, err)
}

// PersonDetails returns a TMDB person.
// @Summary TMDB person details
// @Tags tmdb
// @Produce json
// @Param id path string true "TMDB person ID"
// @Param append query string false "append_to_response value"
// @Success 200 {object} object
// @Router /tmdb/person/{id} [get]
func (h *TMDBHandler) PersonDetails(c fiber.Ctx) error {
	raw, err := h.client.PersonDetails(c.Context(), c.Params("id"), c.Query("append"))
	return h.relay(c, raw, err)
}

// MovieDetails returns a TMDB movie.
// @Summary TMDB movie details
// @Tags tmdb
// @Produce json
// @Param id path string true "TMDB movie ID"
// @Param append query string false "append_to_response value"
// @Success 200 {object} object
// @Router /tmdb/movie/{id} [get]
func (h *TMDBHandler) MovieDetails(c fiber.Ctx) error {
	raw, err := h.client.MovieDetails(c.Context(), c.Params("id"), c.Query("append"))
	return h.relay(c, raw, err)
}

// MoviePosters searches TMDB movies and returns their posters.
// @Summary TMDB movie posters
// @Tags tmdb
// @Produce json
// @Param query query string true "Search text"
// @Success 200 {array} tmdb.Poster
// @Failure 400 {object} ErrorResponse
// @Router /tmdb/movie/posters [get]
func (h *TMDBHandler) MoviePosters(c fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		return badRequest(c, "query is required")
	}
	posters, err := h.client.MoviePosters(c.Context(), query)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(posters)
}

func (h *TMDBHandler) relay(c fiber.Ctx, raw json.RawMessage, err error) error {
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

func (h *TMDBHandler) fail(c fiber.Ctx, err error) error {
	var se *tmdb.StatusError
	switch {
	case errors.As(err, &se):
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(se.Status).Send(se.Body)
	case errors.Is(err, tmdb.ErrNotConfigured):
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, tmdb.ErrUnavailable):
		slog.Warn("TMDB request failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: tmdb.ErrUnavailable.Error()})
	default:
		return respondError(c, err, "TMDB proxy failed")
	}
}
