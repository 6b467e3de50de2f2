package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"movie-database-service/internal/auth"
	"movie-database-service/internal/search"
	"movie-database-service/internal/service"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges a write.
type MessageResponse struct {
	Message string `json:"message"`
}

// statusFor maps domain sentinels to HTTP statuses. Validation errors keep
// their detail; the rest answer with the sentinel text only.
var statusFor = []struct {
	err        error
	status     int
	withDetail bool
}{
	{search.ErrInvalidCriteria, fiber.StatusBadRequest, true},
	{service.ErrValidation, fiber.StatusBadRequest, true},
	{auth.ErrValidation, fiber.StatusBadRequest, true},
	{auth.ErrInvalidCredentials, fiber.StatusBadRequest, false},
	{auth.ErrDuplicateUser, fiber.StatusConflict, false},
	{service.ErrTitleNotFound, fiber.StatusNotFound, false},
	{service.ErrIndividualNotFound, fiber.StatusNotFound, false},
	{service.ErrRatingNotFound, fiber.StatusNotFound, false},
	{service.ErrGenreNotFound, fiber.StatusNotFound, false},
	{service.ErrNoFeaturedTitle, fiber.StatusNotFound, false},
}

// respondError writes err as an ErrorResponse. Unknown errors are logged and
// hidden behind a 500.
func respondError(c fiber.Ctx, err error, op string) error {
	for _, m := range statusFor {
		if !errors.Is(err, m.err) {
			continue
		}
		msg := m.err.Error()
		if m.withDetail {
			msg = err.Error()
		}
		return c.Status(m.status).JSON(ErrorResponse{Error: msg})
	}

	slog.Error(op, "error", err, "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal server error"})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
}

// ErrorHandler handles errors escaping route handlers, such as unknown routes.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(ErrorResponse{Error: fe.Message})
	}
	return respondError(c, err, "unhandled request error")
}

// queryInt parses an optional integer query parameter. A missing value
// yields nil.
func queryInt(c fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New("invalid " + key)
	}
	return &v, nil
}

func queryFloat(c fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New("invalid " + key)
	}
	return &v, nil
}

func queryBool(c fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.New("invalid " + key)
	}
	return &v, nil
}

// pageParams reads page and pageSize. Missing values become 0 and are
// normalized by the search package.
func pageParams(c fiber.Ctx) (page, pageSize int, err error) {
	p, err := queryInt(c, "page")
	if err != nil {
		return 0, 0, err
	}
	ps, err := queryInt(c, "pageSize")
	if err != nil {
		return 0, 0, err
	}
	if p != nil {
		page = *p
	}
	if ps != nil {
		pageSize = *ps
	}
	return page, pageSize, nil
}
