package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/response"
)

// handleError maps a service error to its HTTP status. Unknown errors are
// logged and answered with fallback as a generic 500.
func handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrDuplicateEntry), errors.Is(err, domain.ErrDeactivated):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrBusinessRule):
		return response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, err.Error())
	}

	log.Error().Err(err).Str("path", c.Path()).Msg(fallback)
	return response.InternalServerError(c, fallback)
}

// errInvalidID is returned by parseID for malformed or zero ids
var errInvalidID = errors.New("invalid id")

// parseID reads a positive id path parameter
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// includeInactive reads the ?all=true switch of list endpoints
func includeInactive(c *fiber.Ctx) bool {
	return c.Query("all") == "true"
}

// actorID returns the authenticated usuario id set by the auth middleware
func actorID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok
}
