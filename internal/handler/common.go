package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ktucyber/internal/auth"
	apperrors "ktucyber/internal/errors"
	"ktucyber/internal/service"
)

// Result is the uniform response body for UI-facing actions. Callers branch
// on the value rather than on status handling.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ok writes a success result.
func ok(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Result{Success: true, Message: message, Data: data})
}

// knownErrors are domain failures whose message is safe to show the user.
var knownErrors = []error{
	apperrors.ErrUserNotFound,
	apperrors.ErrDocumentNotFound,
	apperrors.ErrBookmarkNotFound,
	apperrors.ErrDownloadNotFound,
	apperrors.ErrNotificationNotFound,
	apperrors.ErrSubjectNotFound,
	apperrors.ErrUnauthorized,
	apperrors.ErrForbidden,
	apperrors.ErrInvalidInput,
	auth.ErrInvalidToken,
	service.ErrUserAlreadyExists,
	service.ErrInvalidPassword,
	service.ErrPasswordMismatch,
	service.ErrTokenAlreadyUsed,
	service.ErrAlreadyRecorded,
	service.ErrSelfFollow,
	service.ErrAlreadyFollowing,
	service.ErrNotFollowing,
	service.ErrSlugTaken,
}

// fail maps an error to a JSON failure result. Domain errors surface their
// message; anything else is logged and degraded to a generic message so no
// database or storage detail leaks to the caller.
func fail(c echo.Context, err error) error {
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			status := apperrors.MapErrorToStatus(known)
			if status == http.StatusInternalServerError {
				status = http.StatusBadRequest
			}
			return c.JSON(status, Result{Success: false, Message: known.Error()})
		}
	}
	log.Printf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, Result{Success: false, Message: "internal server error"})
}

// subject returns the verified session claims and parsed user ID for the
// current caller. This is the universal precondition for every mutation.
func subject(c echo.Context, session *auth.Session) (*auth.SessionClaims, uuid.UUID, error) {
	claims, err := session.Current(c)
	if err != nil {
		return nil, uuid.Nil, apperrors.ErrUnauthorized
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, uuid.Nil, apperrors.ErrUnauthorized
	}
	return claims, id, nil
}

// pagination reads page/page_size query params with defaults.
func pagination(c echo.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}
