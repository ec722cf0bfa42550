package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventsystem/internal/delivery/http/helpers"
	"eventsystem/internal/domain"
)

// VenueRequest is the request body for POST /admin/venues and PUT /admin/venues/{venueID}.
type VenueRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
}

// Validate implements Validator.
func (v VenueRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(v.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(v.Address) == "" {
		errs = append(errs, "address is required")
	}
	if strings.TrimSpace(v.City) == "" {
		errs = append(errs, "city is required")
	}
	if v.Capacity < 1 {
		errs = append(errs, "capacity must be at least 1")
	}
	return errs
}

// NameRequest is the request body for category and tag create/update endpoints.
type NameRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (n NameRequest) Validate() []string {
	if strings.TrimSpace(n.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// CreatedResponse is the data payload for lookup create endpoints (201).
type CreatedResponse struct {
	ID string `json:"id"`
}

// CreatedSuccessResponse is the success response envelope for lookup create endpoints (201).
type CreatedSuccessResponse struct {
	Data  CreatedResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// StatusResponse is the data payload for lookup update and delete endpoints (200).
type StatusResponse struct {
	Status string `json:"status"`
}

// StatusSuccessResponse is the success response envelope for lookup update and delete endpoints (200).
type StatusSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListVenuesSuccessResponse is the success response envelope for GET /venues (200).
type ListVenuesSuccessResponse struct {
	Data  []*domain.Venue   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListCategoriesSuccessResponse is the success response envelope for GET /categories (200).
type ListCategoriesSuccessResponse struct {
	Data  []*domain.Category `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListTagsSuccessResponse is the success response envelope for GET /tags (200).
type ListTagsSuccessResponse struct {
	Data  []*domain.Tag     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type LookupController struct {
	Logger  *slog.Logger
	Service domain.LookupService
}

func NewLookupController(logger *slog.Logger, svc domain.LookupService) *LookupController {
	return &LookupController{
		Logger:  logger,
		Service: svc,
	}
}

// writeLookupError maps the common lookup service errors to HTTP responses.
func (c *LookupController) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// ListVenues godoc
// @Summary List venues
// @Description Returns all venues ordered by city, then name.
// @Tags lookups
// @Produce json
// @Success 200 {object} controllers.ListVenuesSuccessResponse "data is an array of venues"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [get]
func (c *LookupController) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := c.Service.ListVenues(r.Context())
	if err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	if venues == nil {
		venues = []*domain.Venue{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venues)
}

// CreateVenue godoc
// @Summary Create a venue
// @Description Creates a venue with a positive capacity. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venue body VenueRequest true "Venue data"
// @Success 201 {object} controllers.CreatedSuccessResponse "data contains the new venue id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (admin only)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/venues [post]
func (c *LookupController) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, err := c.Service.CreateVenue(r.Context(), req.Name, req.Address, req.City, req.Capacity)
	if err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateVenue godoc
// @Summary Update a venue
// @Description Replaces the venue's name, address, city, and capacity. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Param venue body VenueRequest true "Venue data"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (admin only)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/venues/{venueID} [put]
func (c *LookupController) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if !uuidRegex.MatchString(venueID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "venueID must be a UUID")
		return
	}
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.UpdateVenue(r.Context(), venueID, req.Name, req.Address, req.City, req.Capacity); err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "updated"})
}

// DeleteVenue godoc
// @Summary Delete a venue
// @Description Deletes a venue. Fails with 409 while any event still references it. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (admin only)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (venue still referenced by events)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/venues/{venueID} [delete]
func (c *LookupController) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if !uuidRegex.MatchString(venueID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "venueID must be a UUID")
		return
	}
	if err := c.Service.DeleteVenue(r.Context(), venueID); err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// ListCategories godoc
// @Summary List categories
// @Description Returns all categories ordered by name.
// @Tags lookups
// @Produce json
// @Success 200 {object} controllers.ListCategoriesSuccessResponse "data is an array of categories"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories [get]
func (c *LookupController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Service.ListCategories(r.Context())
	if err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category
// @Description Creates a category with a unique, non-blank name. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body NameRequest true "Category name"
// @Success 201 {object} controllers.CreatedSuccessResponse "data contains the new category id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (admin only)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/categories [post]
func (c *LookupController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, err := c.Service.CreateCategory(r.Context(), req.Name)
	if err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateCategory godoc
// @Summary Rename a category
// @Description Renames a category; the new name must be unique among the other categories. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID (UUID)"
// @Param category body NameRequest true "New category name"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (admin only)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/categories/{categoryID} [put]
func (c *LookupController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryID")
	if !uuidRegex.MatchString(categoryID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "categoryID must be a UUID")
		return
	}
	var req NameRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.UpdateCategory(r.Context(), categoryID, req.Name); err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "updated"})
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Deletes a category; its event associations are removed with it. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (admin only)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/categories/{categoryID} [delete]
func (c *LookupController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryID")
	if !uuidRegex.MatchString(categoryID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "categoryID must be a UUID")
		return
	}
	if err := c.Service.DeleteCategory(r.Context(), categoryID); err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// ListTags godoc
// @Summary List tags
// @Description Returns all tags ordered by name.
// @Tags lookups
// @Produce json
// @Success 200 {object} controllers.ListTagsSuccessResponse "data is an array of tags"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tags [get]
func (c *LookupController) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := c.Service.ListTags(r.Context())
	if err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tags)
}

// CreateTag godoc
// @Summary Create a tag
// @Description Creates a tag with a unique, non-blank name. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tag body NameRequest true "Tag name"
// @Success 201 {object} controllers.CreatedSuccessResponse "data contains the new tag id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (admin only)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/tags [post]
func (c *LookupController) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req NameRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, err := c.Service.CreateTag(r.Context(), req.Name)
	if err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateTag godoc
// @Summary Rename a tag
// @Description Renames a tag; the new name must be unique among the other tags. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tagID path string true "Tag ID (UUID)"
// @Param tag body NameRequest true "New tag name"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (admin only)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/tags/{tagID} [put]
func (c *LookupController) UpdateTag(w http.ResponseWriter, r *http.Request) {
	tagID := r.PathValue("tagID")
	if !uuidRegex.MatchString(tagID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "tagID must be a UUID")
		return
	}
	var req NameRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.UpdateTag(r.Context(), tagID, req.Name); err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "updated"})
}

// DeleteTag godoc
// @Summary Delete a tag
// @Description Deletes a tag; its event associations are removed with it. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param tagID path string true "Tag ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (admin only)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/tags/{tagID} [delete]
func (c *LookupController) DeleteTag(w http.ResponseWriter, r *http.Request) {
	tagID := r.PathValue("tagID")
	if !uuidRegex.MatchString(tagID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "tagID must be a UUID")
		return
	}
	if err := c.Service.DeleteTag(r.Context(), tagID); err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}
