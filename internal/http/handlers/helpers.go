package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"sellerdesk/pkg/apierr"
)

// respondError writes the typed error JSON body with the mapped status
func respondError(c echo.Context, err error) error {
	if ae, ok := apierr.As(err); ok {
		return c.JSON(apierr.HTTPStatus(err), map[string]string{
			"error": ae.Message,
			"code":  string(ae.Code),
		})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
		"code":  string(apierr.CodeInternal),
	})
}

// notFound writes a NOT_FOUND response for a named resource
func notFound(c echo.Context, resource string) error {
	return respondError(c, apierr.NotFound(resource))
}

// badRequest writes a VALIDATION response
func badRequest(c echo.Context, message string) error {
	return respondError(c, apierr.Validation(message))
}

// paginationParams extracts page/limit query params with the API's defaults
// (page 1, limit 20, max 100) and returns (limit, offset, page).
func paginationParams(c echo.Context) (int, int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return limit, (page - 1) * limit, page
}

// pathID parses the :id path parameter as a UUID
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apierr.Validation("invalid " + name)
	}
	return id, nil
}

// currentUserID returns the authenticated user's ID from the context
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get("user_id").(uuid.UUID)
	return id, ok
}
