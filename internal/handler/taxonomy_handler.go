package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"ktucyber/internal/auth"
	"ktucyber/internal/service"
)

// TaxonomyHandler handles university and subject endpoints.
type TaxonomyHandler struct {
	taxonomyService service.TaxonomyService
	session         *auth.Session
}

// NewTaxonomyHandler creates a new taxonomy handler.
func NewTaxonomyHandler(taxonomyService service.TaxonomyService, session *auth.Session) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService, session: session}
}

// CreateUniversityRequest represents a new university entry.
type CreateUniversityRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	ImageLink   string `json:"image_link" validate:"omitempty,url"`
	Description string `json:"description" validate:"max=2000"`
	Slug        string `json:"slug"`
}

// CreateSubjectRequest represents a new subject entry.
type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Code        string `json:"code" validate:"max=20"`
	Slug        string `json:"slug"`
}

// CreateUniversity godoc
// @Summary Create a university (admin only)
// @Tags taxonomy
// @Accept json
// @Produce json
// @Param request body CreateUniversityRequest true "University"
// @Success 201 {object} Result
// @Failure 400 {object} Result
// @Failure 401 {object} Result
// @Failure 403 {object} Result
// @Router /universities [post]
func (h *TaxonomyHandler) CreateUniversity(c echo.Context) error {
	claims, _, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}

	var req CreateUniversityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}

	university, err := h.taxonomyService.CreateUniversity(c.Request().Context(), claims.Role, req.Name, req.ImageLink, req.Description, req.Slug)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, Result{Success: true, Message: "university created", Data: university})
}

// CreateSubject godoc
// @Summary Create a subject (admin only)
// @Tags taxonomy
// @Accept json
// @Produce json
// @Param request body CreateSubjectRequest true "Subject"
// @Success 201 {object} Result
// @Failure 400 {object} Result
// @Failure 401 {object} Result
// @Failure 403 {object} Result
// @Router /subjects [post]
func (h *TaxonomyHandler) CreateSubject(c echo.Context) error {
	claims, _, err := subject(c, h.session)
	if err != nil {
		return fail(c, err)
	}

	var req CreateSubjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Result{Success: false, Message: "invalid input data"})
	}

	subj, err := h.taxonomyService.CreateSubject(c.Request().Context(), claims.Role, req.Name, req.Description, req.Code, req.Slug)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, Result{Success: true, Message: "subject created", Data: subj})
}

// GetSubject godoc
// @Summary Get a subject by slug
// @Tags taxonomy
// @Produce json
// @Param slug path string true "Subject slug"
// @Success 200 {object} Result
// @Failure 404 {object} Result
// @Router /subjects/{slug} [get]
func (h *TaxonomyHandler) GetSubject(c echo.Context) error {
	subj, err := h.taxonomyService.GetSubjectBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "subject found", subj)
}

// SubjectDocuments godoc
// @Summary List public documents of a subject
// @Tags taxonomy
// @Produce json
// @Param slug path string true "Subject slug"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Result
// @Failure 404 {object} Result
// @Router /subjects/{slug}/documents [get]
func (h *TaxonomyHandler) SubjectDocuments(c echo.Context) error {
	page, pageSize := pagination(c)
	docs, err := h.taxonomyService.SubjectDocuments(c.Request().Context(), c.Param("slug"), page, pageSize)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "documents found", docs)
}

// SearchUniversities godoc
// @Summary Search universities by name
// @Tags taxonomy
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Max results"
// @Success 200 {object} Result
// @Router /universities/search [get]
func (h *TaxonomyHandler) SearchUniversities(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	universities, err := h.taxonomyService.SearchUniversities(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "universities found", universities)
}

// SearchSubjects godoc
// @Summary Search subjects by name or code
// @Tags taxonomy
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Max results"
// @Success 200 {object} Result
// @Router /subjects/search [get]
func (h *TaxonomyHandler) SearchSubjects(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	subjects, err := h.taxonomyService.SearchSubjects(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "subjects found", subjects)
}
