package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"ktucyber/internal/auth"
	"ktucyber/internal/model"
	"ktucyber/internal/service"
)

// maxAvatarBytes caps profile picture uploads at 5 MiB.
const maxAvatarBytes = 5 << 20

// ProfileHandler handles profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
	session        *auth.Session
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService, session *auth.Session) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, session: session}
}

// UpdateSettingsRequest carries the settings blob to persist.
type UpdateSettingsRequest struct {
	Theme         string                  `json:"theme" validate:"omitempty,oneof=light dark system"`
	Bio           string                  `json:"bio" validate:"max=500"`
	SocialLinks   map[string]string       `json:"social_links"`
	Notifications model.NotificationPrefs `json:"notifications"`
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags profile
// @Produce json
// @Success 200 {object} Result
// @Failure 401 {object} Result
// @Router /profile [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}
	profile, err := h.profileService.GetProfile(c.Request().Context(), callerID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "profile found", profile)
}

// PublicProfile godoc
// @Summary Get a public profile by username
// @Tags profile
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} Result
// @Failure 404 {object} Result
// @Router /profiles/{username} [get]
func (h *ProfileHandler) PublicProfile(c echo.Context) error {
	profile, err := h.profileService.GetPublicProfile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "profile found", profile)
}

// UpdateSettings godoc
// @Summary Update the authenticated user's settings
// @Tags profile
// @Accept json
// @Produce json
// @Param request body UpdateSettingsRequest true "Settings"
// @Success 200 {object} Result
// @Failure 400 {object} Result
// @Failure 401 {object} Result
// @Router /profile/settings [put]
func (h *ProfileHandler) UpdateSettings(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}

	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}

	err = h.profileService.UpdateSettings(c.Request().Context(), callerID, model.Settings{
		Theme:         req.Theme,
		Bio:           req.Bio,
		SocialLinks:   req.SocialLinks,
		Notifications: req.Notifications,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "settings updated", nil)
}

// UploadProfilePicture godoc
// @Summary Upload a new profile picture
// @Tags profile
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} Result
// @Failure 400 {object} Result
// @Failure 401 {object} Result
// @Router /profile/picture [post]
func (h *ProfileHandler) UploadProfilePicture(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "file is required"})
	}
	if fileHeader.Size > maxAvatarBytes {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "file too large"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return fail(c, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxAvatarBytes))
	if err != nil {
		return fail(c, err)
	}

	url, err := h.profileService.UploadProfilePicture(c.Request().Context(), callerID, fileHeader.Filename, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "profile picture updated", map[string]string{"url": url})
}

// UploadedDocuments godoc
// @Summary List the authenticated user's uploaded documents
// @Tags profile
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Result
// @Failure 401 {object} Result
// @Router /profile/documents [get]
func (h *ProfileHandler) UploadedDocuments(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}
	page, pageSize := pagination(c)
	docs, err := h.profileService.UploadedDocuments(c.Request().Context(), callerID, page, pageSize)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "documents found", docs)
}

// PublicDocuments godoc
// @Summary List a user's public documents by username
// @Tags profile
// @Produce json
// @Param username path string true "Username"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Result
// @Failure 404 {object} Result
// @Router /profiles/{username}/documents [get]
func (h *ProfileHandler) PublicDocuments(c echo.Context) error {
	page, pageSize := pagination(c)
	docs, err := h.profileService.PublicDocuments(c.Request().Context(), c.Param("username"), page, pageSize)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "documents found", docs)
}

// DownloadedDocuments godoc
// @Summary List documents the authenticated user has downloaded
// @Tags profile
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Result
// @Failure 401 {object} Result
// @Router /profile/downloads [get]
func (h *ProfileHandler) DownloadedDocuments(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}
	page, pageSize := pagination(c)
	docs, err := h.profileService.DownloadedDocuments(c.Request().Context(), callerID, page, pageSize)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "documents found", docs)
}

// BookmarkedDocuments godoc
// @Summary List documents the authenticated user has bookmarked
// @Tags profile
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Result
// @Failure 401 {object} Result
// @Router /profile/bookmarks [get]
func (h *ProfileHandler) BookmarkedDocuments(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}
	page, pageSize := pagination(c)
	docs, err := h.profileService.BookmarkedDocuments(c.Request().Context(), callerID, page, pageSize)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "documents found", docs)
}

// DeleteAccount godoc
// @Summary Permanently delete the authenticated user's account
// @Tags profile
// @Produce json
// @Success 200 {object} Result
// @Failure 401 {object} Result
// @Router /profile [delete]
func (h *ProfileHandler) DeleteAccount(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}
	if err := h.profileService.DeleteAccount(c.Request().Context(), callerID); err != nil {
		return fail(c, err)
	}
	h.session.Clear(c)
	return ok(c, "account deleted", nil)
}
