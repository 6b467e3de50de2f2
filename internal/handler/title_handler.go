package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"movie-database-service/internal/models"
	"movie-database-service/internal/search"
)

// TitleService is the title read surface used by TitleHandler.
type TitleService interface {
	Search(ctx context.Context, c search.TitleCriteria) ([]models.TitlePreview, error)
	Top(ctx context.Context, mediaType string, page, pageSize int) ([]models.TitlePreview, error)
	Get(ctx context.Context, id string) (*models.TitleFull, error)
	Featured(ctx context.Context) (*models.TitleFull, error)
	Similar(ctx context.Context, id string) ([]models.SimilarTitle, error)
	Contributors(ctx context.Context, id string) ([]models.Contributor, error)
	Ratings(ctx context.Context, id string) ([]models.Rating, error)
	Episodes(ctx context.Context, id string) ([]models.Episode, error)
}

// TitleHandler handles HTTP requests for titles.
type TitleHandler struct {
	svc TitleService
}

// NewTitleHandler creates a new TitleHandler.
func NewTitleHandler(svc TitleService) *TitleHandler {
	return &TitleHandler{svc: svc}
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-database-service",
	})
}

// ListTitles searches titles.
// @Summary Search titles
// @Tags titles
// @Produce json
// @Param name query string false "Case-insensitive substring of the primary title"
// @Param genre query string false "Genre name"
// @Param mediaType query string false "Media type, e.g. movie or tvSeries"
// @Param minYear query int false "Earliest start year"
// @Param maxYear query int false "Latest start year"
// @Param minRating query number false "Minimum average rating"
// @Param isAdult query bool false "Adult flag"
// @Param sortBy query string false "Sort key" Enums(numvotes,rating,year,title)
// @Param sortDescending query bool false "Sort direction"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Success 200 {array} models.TitlePreview
// @Failure 400 {object} ErrorResponse
// @Router /titles [get]
func (h *TitleHandler) ListTitles(c fiber.Ctx) error {
	criteria, err := titleCriteria(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	titles, err := h.svc.Search(c.Context(), criteria)
	if err != nil {
		return respondError(c, err, "failed to search titles")
	}
	return c.JSON(titles)
}

func titleCriteria(c fiber.Ctx) (search.TitleCriteria, error) {
	criteria := search.TitleCriteria{
		Name:      c.Query("name"),
		Genre:     c.Query("genre"),
		MediaType: c.Query("mediaType"),
		SortBy:    c.Query("sortBy"),
	}

	var err error
	if criteria.MinYear, err = queryInt(c, "minYear"); err != nil {
		return criteria, err
	}
	if criteria.MaxYear, err = queryInt(c, "maxYear"); err != nil {
		return criteria, err
	}
	if criteria.MinRating, err = queryFloat(c, "minRating"); err != nil {
		return criteria, err
	}
	if criteria.IsAdult, err = queryBool(c, "isAdult"); err != nil {
		return criteria, err
	}
	if criteria.SortDescending, err = queryBool(c, "sortDescending"); err != nil {
		return criteria, err
	}
	criteria.Page, criteria.PageSize, err = pageParams(c)
	return criteria, err
}

// TopTitles returns the best rated titles of one media type.
// @Summary Top rated titles
// @Tags titles
// @Produce json
// @Param type path string true "Media type"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Success 200 {array} models.TitlePreview
// @Failure 400 {object} ErrorResponse
// @Router /titles/top/{type} [get]
func (h *TitleHandler) TopTitles(c fiber.Ctx) error {
	page, pageSize, err := pageParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	titles, err := h.svc.Top(c.Context(), c.Params("type"), page, pageSize)
	if err != nil {
		return respondError(c, err, "failed to load top titles")
	}
	return c.JSON(titles)
}

// FeaturedTitle returns the title featured today.
// @Summary Featured title of the day
// @Tags titles
// @Produce json
// @Success 200 {object} models.TitleFull
// @Failure 404 {object} ErrorResponse
// @Router /titles/featured [get]
func (h *TitleHandler) FeaturedTitle(c fiber.Ctx) error {
	title, err := h.svc.Featured(c.Context())
	if err != nil {
		return respondError(c, err, "failed to pick featured title")
	}
	return c.JSON(title)
}

// GetTitle returns a single title with its genres.
// @Summary Get title details
// @Tags titles
// @Produce json
// @Param id path string true "Title ID"
// @Success 200 {object} models.TitleFull
// @Failure 404 {object} ErrorResponse
// @Router /titles/{id} [get]
func (h *TitleHandler) GetTitle(c fiber.Ctx) error {
	title, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to get title")
	}
	return c.JSON(title)
}

// SimilarTitles returns titles sharing genres with the given one.
// @Summary Similar titles
// @Tags titles
// @Produce json
// @Param id path string true "Title ID"
// @Success 200 {array} models.SimilarTitle
// @Failure 404 {object} ErrorResponse
// @Router /titles/{id}/similar [get]
func (h *TitleHandler) SimilarTitles(c fiber.Ctx) error {
	titles, err := h.svc.Similar(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to find similar titles")
	}
	return c.JSON(titles)
}

// TitleIndividuals returns the credited individuals of a title.
// @Summary Title contributors
// @Tags titles
// @Produce json
// @Param id path string true "Title ID"
// @Success 200 {array} models.Contributor
// @Failure 404 {object} ErrorResponse
// @Router /titles/{id}/individuals [get]
func (h *TitleHandler) TitleIndividuals(c fiber.Ctx) error {
	rows, err := h.svc.Contributors(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to load contributors")
	}
	return c.JSON(rows)
}

// TitleRatings returns user ratings of a title.
// @Summary Title ratings
// @Tags titles
// @Produce json
// @Param id path string true "Title ID"
// @Success 200 {array} models.Rating
// @Failure 404 {object} ErrorResponse
// @Router /titles/{id}/ratings [get]
func (h *TitleHandler) TitleRatings(c fiber.Ctx) error {
	rows, err := h.svc.Ratings(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to load ratings")
	}
	return c.JSON(rows)
}

// TitleEpisodes returns the episodes of a series.
// @Summary Series episodes
// @Tags titles
// @Produce json
// @Param id path string true "Series title ID"
// @Success 200 {array} models.Episode
// @Failure 404 {object} ErrorResponse
// @Router /titles/{id}/episodes [get]
func (h *TitleHandler) TitleEpisodes(c fiber.Ctx) error {
	rows, err := h.svc.Episodes(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to load episodes")
	}
	return c.JSON(rows)
}
