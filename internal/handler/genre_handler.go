package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"movie-database-service/internal/models"
)

// GenreService is the genre catalogue surface used by GenreHandler.
type GenreService interface {
	List(ctx context.Context) ([]models.Genre, error)
	Get(ctx context.Context, id int) (*models.Genre, error)
	Titles(ctx context.Context, id, page, pageSize int) ([]models.TitlePreview, error)
}

// GenreHandler handles HTTP requests for genres.
type GenreHandler struct {
	svc GenreService
}

// NewGenreHandler creates a new GenreHandler.
func NewGenreHandler(svc GenreService) *GenreHandler {
	return &GenreHandler{svc: svc}
}

// ListGenres returns every genre.
// @Summary List genres
// @Tags genres
// @Produce json
// @Success 200 {array} models.Genre
// @Router /genres [get]
func (h *GenreHandler) ListGenres(c fiber.Ctx) error {
	genres, err := h.svc.List(c.Context())
	if err != nil {
		return respondError(c, err, "failed to list genres")
	}
	return c.JSON(genres)
}

// GetGenre returns one genre.
// @Summary Get genre
// @Tags genres
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} models.Genre
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /genres/{id} [get]
func (h *GenreHandler) GetGenre(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid genre id")
	}

	genre, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err, "failed to get genre")
	}
	return c.JSON(genre)
}

// GenreTitles returns a page of a genre's titles, best rated first.
// @Summary Titles of a genre
// @Tags genres
// @Produce json
// @Param id path int true "Genre ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Success 200 {array} models.TitlePreview
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /genres/{id}/titles [get]
func (h *GenreHandler) GenreTitles(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid genre id")
	}
	page, pageSize, err := pageParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	titles, err := h.svc.Titles(c.Context(), id, page, pageSize)
	if err != nil {
		return respondError(c, err, "failed to load genre titles")
	}
	return c.JSON(titles)
}
