package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ktucyber/internal/auth"
	"ktucyber/internal/service"
)

// SocialHandler handles follow graph and notification endpoints.
type SocialHandler struct {
	socialService service.SocialService
	session       *auth.Session
}

// NewSocialHandler creates a new social handler.
func NewSocialHandler(socialService service.SocialService, session *auth.Session) *SocialHandler {
	return &SocialHandler{socialService: socialService, session: session}
}

// Follow godoc
// @Summary Follow another user
// @Tags social
// @Produce json
// @Param id path string true "User ID to follow"
// @Success 200 {object} Result
// @Failure 400 {object} Result
// @Failure 401 {object} Result
// @Failure 404 {object} Result
// @Router /users/{id}/follow [post]
func (h *SocialHandler) Follow(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}
	followeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid user id"})
	}
	if err := h.socialService.Follow(c.Request().Context(), callerID, followeeID); err != nil {
		return fail(c, err)
	}
	return ok(c, "user followed", nil)
}

// Unfollow godoc
// @Summary Unfollow a user
// @Tags social
// @Produce json
// @Param id path string true "User ID to unfollow"
// @Success 200 {object} Result
// @Failure 400 {object} Result
// @Failure 401 {object} Result
// @Failure 404 {object} Result
// @Router /users/{id}/follow [delete]
func (h *SocialHandler) Unfollow(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}
	followeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid user id"})
	}
	if err := h.socialService.Unfollow(c.Request().Context(), callerID, followeeID); err != nil {
		return fail(c, err)
	}
	return ok(c, "user unfollowed", nil)
}

// Followers godoc
// @Summary List followers of a user
// @Tags social
// @Produce json
// @Param id path string true "User ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Result
// @Failure 400 {object} Result
// @Router /users/{id}/followers [get]
func (h *SocialHandler) Followers(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid user id"})
	}
	page, pageSize := pagination(c)
	followers, err := h.socialService.Followers(c.Request().Context(), userID, page, pageSize)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "followers found", followers)
}

// Following godoc
// @Summary List users a user is following
// @Tags social
// @Produce json
// @Param id path string true "User ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Result
// @Failure 400 {object} Result
// @Router /users/{id}/following [get]
func (h *SocialHandler) Following(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid user id"})
	}
	page, pageSize := pagination(c)
	following, err := h.socialService.Following(c.Request().Context(), userID, page, pageSize)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "following found", following)
}

// Notifications godoc
// @Summary List the authenticated user's notifications
// @Tags social
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Result
// @Failure 401 {object} Result
// @Router /notifications [get]
func (h *SocialHandler) Notifications(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}
	page, pageSize := pagination(c)
	notifications, err := h.socialService.Notifications(c.Request().Context(), callerID, page, pageSize)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "notifications found", notifications)
}

// MarkNotificationRead godoc
// @Summary Mark a notification as read
// @Tags social
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} Result
// @Failure 401 {object} Result
// @Failure 403 {object} Result
// @Failure 404 {object} Result
// @Router /notifications/{id}/read [put]
func (h *SocialHandler) MarkNotificationRead(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}
	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid notification id"})
	}
	if err := h.socialService.MarkNotificationRead(c.Request().Context(), callerID, uint(notificationID)); err != nil {
		return fail(c, err)
	}
	return ok(c, "notification marked as read", nil)
}
