package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"movie-database-service/internal/models"
	"movie-database-service/internal/search"
)

// IndividualService is the individual read surface used by IndividualHandler.
type IndividualService interface {
	Search(ctx context.Context, c search.IndividualCriteria) ([]models.IndividualReference, error)
	MostPopular(ctx context.Context, page, pageSize int) ([]models.IndividualReference, error)
	Get(ctx context.Context, id string) (*models.IndividualFull, error)
	Titles(ctx context.Context, id string) ([]models.TitlePreview, error)
	CoActors(ctx context.Context, name string) ([]models.CoActor, error)
	PopularActors(ctx context.Context, id string) ([]models.IndividualFull, error)
	FindByName(ctx context.Context, name string) ([]models.NameMatch, error)
}

// IndividualHandler handles HTTP requests for individuals.
type IndividualHandler struct {
	svc IndividualService
}

// NewIndividualHandler creates a new IndividualHandler.
func NewIndividualHandler(svc IndividualService) *IndividualHandler {
	return &IndividualHandler{svc: svc}
}

// ListIndividuals searches individuals.
// @Summary Search individuals
// @Tags individuals
// @Produce json
// @Param name query string false "Case-insensitive substring of the name"
// @Param minBirthYear query int false "Earliest birth year"
// @Param maxBirthYear query int false "Latest birth year"
// @Param sortBy query string false "Sort key" Enums(name,birthyear,rating,votes)
// @Param sortDescending query bool false "Sort direction"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Success 200 {array} models.IndividualReference
// @Failure 400 {object} ErrorResponse
// @Router /individuals [get]
func (h *IndividualHandler) ListIndividuals(c fiber.Ctx) error {
	criteria := search.IndividualCriteria{
		Name:   c.Query("name"),
		SortBy: c.Query("sortBy"),
	}

	var err error
	if criteria.MinBirthYear, err = queryInt(c, "minBirthYear"); err != nil {
		return badRequest(c, err.Error())
	}
	if criteria.MaxBirthYear, err = queryInt(c, "maxBirthYear"); err != nil {
		return badRequest(c, err.Error())
	}
	if criteria.SortDescending, err = queryBool(c, "sortDescending"); err != nil {
		return badRequest(c, err.Error())
	}
	if criteria.Page, criteria.PageSize, err = pageParams(c); err != nil {
		return badRequest(c, err.Error())
	}

	rows, err := h.svc.Search(c.Context(), criteria)
	if err != nil {
		return respondError(c, err, "failed to search individuals")
	}
	return c.JSON(rows)
}

// PopularIndividuals ranks individuals by the votes on their titles.
// @Summary Most popular individuals
// @Tags individuals
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Success 200 {array} models.IndividualReference
// @Router /individuals/popular [get]
func (h *IndividualHandler) PopularIndividuals(c fiber.Ctx) error {
	page, pageSize, err := pageParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	rows, err := h.svc.MostPopular(c.Context(), page, pageSize)
	if err != nil {
		return respondError(c, err, "failed to load popular individuals")
	}
	return c.JSON(rows)
}

// CoActors lists who most often appears alongside the named actor.
// @Summary Co-actors
// @Tags individuals
// @Produce json
// @Param name query string true "Actor name"
// @Success 200 {array} models.CoActor
// @Router /individuals/co-actors [get]
func (h *IndividualHandler) CoActors(c fiber.Ctx) error {
	rows, err := h.svc.CoActors(c.Context(), c.Query("name"))
	if err != nil {
		return respondError(c, err, "failed to find co-actors")
	}
	return c.JSON(rows)
}

// FindCredits lists the credits of every individual matching a name.
// @Summary Credits by name
// @Tags individuals
// @Produce json
// @Param name query string true "Name substring"
// @Success 200 {array} models.NameMatch
// @Failure 400 {object} ErrorResponse
// @Router /individuals/credits [get]
func (h *IndividualHandler) FindCredits(c fiber.Ctx) error {
	rows, err := h.svc.FindByName(c.Context(), c.Query("name"))
	if err != nil {
		return respondError(c, err, "failed to find credits")
	}
	return c.JSON(rows)
}

// GetIndividual returns a single individual.
// @Summary Get individual details
// @Tags individuals
// @Produce json
// @Param id path string true "Individual ID"
// @Success 200 {object} models.IndividualFull
// @Failure 404 {object} ErrorResponse
// @Router /individuals/{id} [get]
func (h *IndividualHandler) GetIndividual(c fiber.Ctx) error {
	person, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to get individual")
	}
	return c.JSON(person)
}

// IndividualTitles returns the titles an individual is credited on.
// @Summary Titles of an individual
// @Tags individuals
// @Produce json
// @Param id path string true "Individual ID"
// @Success 200 {array} models.TitlePreview
// @Failure 404 {object} ErrorResponse
// @Router /individuals/{id}/titles [get]
func (h *IndividualHandler) IndividualTitles(c fiber.Ctx) error {
	rows, err := h.svc.Titles(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to load titles")
	}
	return c.JSON(rows)
}

// PopularActors returns popular actors related to a title or individual id.
// @Summary Popular actors
// @Tags individuals
// @Produce json
// @Param id path string true "Title (tt...) or individual (nm...) ID"
// @Success 200 {array} models.IndividualFull
// @Failure 400 {object} ErrorResponse
// @Router /individuals/{id}/popular-actors [get]
func (h *IndividualHandler) PopularActors(c fiber.Ctx) error {
	rows, err := h.svc.PopularActors(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to load popular actors")
	}
	return c.JSON(rows)
}
