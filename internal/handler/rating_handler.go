package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"movie-database-service/internal/middleware"
	"movie-database-service/internal/models"
)

// RatingService records ratings on behalf of a user.
type RatingService interface {
	Rate(ctx context.Context, userID int, titleID string, score int, review string) error
	Delete(ctx context.Context, userID int, titleID string) error
	ByUser(ctx context.Context, userID int) ([]models.Rating, error)
}

// RateRequest is the body of POST /ratings.
type RateRequest struct {
	TitleID    string `json:"titleId" validate:"required"`
	Rating     int    `json:"rating" validate:"gte=1,lte=10"`
	ReviewText string `json:"reviewText"`
}

// RatingHandler handles the caller's ratings. Routes sit behind
// middleware.RequireAuth.
type RatingHandler struct {
	svc RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(svc RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

// Rate creates or replaces the caller's rating of a title.
// @Summary Rate a title
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RateRequest true "Rating"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /ratings [post]
func (h *RatingHandler) Rate(c fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "unauthorized"})
	}

	var req RateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validateStruct(req); err != nil {
		return respondError(c, err, "invalid rating request")
	}

	if err := h.svc.Rate(c.Context(), claims.UserID, req.TitleID, req.Rating, req.ReviewText); err != nil {
		return respondError(c, err, "failed to rate title")
	}
	return c.JSON(MessageResponse{Message: "Rating saved"})
}

// DeleteRating removes the caller's rating of a title.
// @Summary Delete a rating
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param titleId path string true "Title ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /ratings/{titleId} [delete]
func (h *RatingHandler) DeleteRating(c fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "unauthorized"})
	}

	if err := h.svc.Delete(c.Context(), claims.UserID, c.Params("titleId")); err != nil {
		return respondError(c, err, "failed to delete rating")
	}
	return c.JSON(MessageResponse{Message: "Rating deleted"})
}

// MyRatings lists the caller's ratings.
// @Summary List my ratings
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Rating
// @Failure 401 {object} ErrorResponse
// @Router /ratings [get]
func (h *RatingHandler) MyRatings(c fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "unauthorized"})
	}

	rows, err := h.svc.ByUser(c.Context(), claims.UserID)
	if err != nil {
		return respondError(c, err, "failed to load ratings")
	}
	return c.JSON(rows)
}
