package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ktucyber/internal/auth"
	"ktucyber/internal/service"
)

// maxUploadBytes caps multipart file uploads at 50 MiB.
const maxUploadBytes = 50 << 20

// DocumentHandler handles document endpoints.
type DocumentHandler struct {
	docService service.DocumentService
	session    *auth.Session
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(docService service.DocumentService, session *auth.Session) *DocumentHandler {
	return &DocumentHandler{docService: docService, session: session}
}

// UploadDocumentRequest represents document metadata submission.
type UploadDocumentRequest struct {
	Slug         string   `json:"slug"`
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	SubjectID    uint     `json:"subject_id" validate:"required"`
	UniversityID uint     `json:"university_id" validate:"required"`
	DocumentType string   `json:"document_type" validate:"required"`
	FileKey      string   `json:"file_key" validate:"required"`
	PreviewImage string   `json:"preview_image"`
	IsPublic     bool     `json:"is_public"`
	Tags         []string `json:"tags"`
}

// UpdateDocumentRequest represents an edit to an owned document.
type UpdateDocumentRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	IsPublic    bool     `json:"is_public"`
	Tags        []string `json:"tags"`
}

// Upload godoc
// @Summary Create a document from uploaded file metadata
// @Tags documents
// @Accept json
// @Produce json
// @Param request body UploadDocumentRequest true "Document metadata"
// @Success 201 {object} Result
// @Failure 400 {object} Result
// @Failure 401 {object} Result
// @Router /documents [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}

	var req UploadDocumentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}

	doc, err := h.docService.Upload(c.Request().Context(), callerID, service.UploadDocumentInput{
		Slug:         req.Slug,
		Title:        req.Title,
		Description:  req.Description,
		SubjectID:    req.SubjectID,
		UniversityID: req.UniversityID,
		DocumentType: req.DocumentType,
		FileKey:      req.FileKey,
		PreviewImage: req.PreviewImage,
		IsPublic:     req.IsPublic,
		Tags:         req.Tags,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, Result{Success: true, Message: "document uploaded", Data: doc})
}

// UploadFile godoc
// @Summary Upload a document file to object storage
// @Tags documents
// @Accept mpfd
// @Produce json
// @Param file formData file true "Document file"
// @Success 201 {object} Result
// @Failure 400 {object} Result
// @Failure 401 {object} Result
// @Router /documents/file [post]
func (h *DocumentHandler) UploadFile(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "file is required"})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "file too large"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return fail(c, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return fail(c, err)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	key, url, err := h.docService.UploadFile(c.Request().Context(), callerID, fileHeader.Filename, data, contentType)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, Result{
		Success: true,
		Message: "file uploaded",
		Data:    map[string]string{"file_key": key, "url": url},
	})
}

// Get godoc
// @Summary Get a document by slug
// @Tags documents
// @Produce json
// @Param slug path string true "Document slug"
// @Success 200 {object} Result
// @Failure 404 {object} Result
// @Router /documents/{slug} [get]
func (h *DocumentHandler) Get(c echo.Context) error {
	doc, err := h.docService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "document found", doc)
}

// Update godoc
// @Summary Update an owned document
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} Result
// @Failure 401 {object} Result
// @Failure 403 {object} Result
// @Failure 404 {object} Result
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid document id"})
	}

	var req UpdateDocumentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}

	doc, err := h.docService.Update(c.Request().Context(), callerID, docID, service.UpdateDocumentInput{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		Tags:        req.Tags,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "document updated", doc)
}

// Delete godoc
// @Summary Delete an owned document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Result
// @Failure 401 {object} Result
// @Failure 403 {object} Result
// @Failure 404 {object} Result
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid document id"})
	}

	if err := h.docService.Delete(c.Request().Context(), callerID, docID); err != nil {
		return fail(c, err)
	}
	return ok(c, "document deleted", nil)
}

// Bookmark godoc
// @Summary Bookmark a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Result
// @Failure 401 {object} Result
// @Failure 404 {object} Result
// @Router /documents/{id}/bookmark [post]
func (h *DocumentHandler) Bookmark(c echo.Context) error {
	return h.engage(c, h.docService.Bookmark, "bookmark added")
}

// Unbookmark godoc
// @Summary Remove a bookmark
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Result
// @Failure 404 {object} Result
// @Router /documents/{id}/bookmark [delete]
func (h *DocumentHandler) Unbookmark(c echo.Context) error {
	return h.engage(c, h.docService.Unbookmark, "bookmark removed")
}

// RecordDownload godoc
// @Summary Record a document download
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Result
// @Failure 404 {object} Result
// @Router /documents/{id}/download [post]
func (h *DocumentHandler) RecordDownload(c echo.Context) error {
	return h.engage(c, h.docService.RecordDownload, "download recorded")
}

// RemoveDownload godoc
// @Summary Remove a download record
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Result
// @Failure 404 {object} Result
// @Router /documents/{id}/download [delete]
func (h *DocumentHandler) RemoveDownload(c echo.Context) error {
	return h.engage(c, h.docService.RemoveDownload, "download removed")
}

func (h *DocumentHandler) engage(c echo.Context, op func(ctx context.Context, userID, docID uuid.UUID) error, message string) error {
	_, callerID, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid document id"})
	}
	if err := op(c.Request().Context(), callerID, docID); err != nil {
		return fail(c, err)
	}
	return ok(c, message, nil)
}
