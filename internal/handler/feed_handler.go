package handler

import (
	"github.com/labstack/echo/v4"

	"ktucyber/internal/service"
)

// FeedHandler handles the home feed endpoint.
type FeedHandler struct {
	feedService service.FeedService
}

// NewFeedHandler creates a new feed handler.
func NewFeedHandler(feedService service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// Home godoc
// @Summary Get the home feed of trending subjects and recent documents
// @Tags feed
// @Produce json
// @Success 200 {object} Result
// @Router /home [get]
func (h *FeedHandler) Home(c echo.Context) error {
	feed, err := h.feedService.HomeFeed(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "home feed", feed)
}

// Refresh godoc
// @Summary Rebuild the cached home feed
// @Tags feed
// @Produce json
// @Success 200 {object} Result
// @Router /home/refresh [post]
func (h *FeedHandler) Refresh(c echo.Context) error {
	if err := h.feedService.RefreshHomeFeed(c.Request().Context()); err != nil {
		return fail(c, err)
	}
	return ok(c, "home feed refreshed", nil)
}
