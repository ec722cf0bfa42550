package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"eventsystem/internal/delivery/http/helpers"
	"eventsystem/internal/delivery/http/middleware"
	"eventsystem/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// EventRequest is the request body for POST /events and PUT /events/{eventID}.
// CategoryIDs and TagIDs replace the event's association sets wholesale.
type EventRequest struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StartUTC    time.Time `json:"start_utc"`
	EndUTC      time.Time `json:"end_utc"`
	Capacity    int       `json:"capacity"`
	IsPublic    bool      `json:"is_public"`
	VenueID     string    `json:"venue_id"`
	CategoryIDs []string  `json:"category_ids"`
	TagIDs      []string  `json:"tag_ids"`
}

// Validate implements Validator. Structural rules only; cross-entity rules
// (venue capacity, unknown category ids) are enforced by the service.
func (e EventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, "title is required")
	}
	if e.StartUTC.IsZero() {
		errs = append(errs, "start_utc is required")
	}
	if e.EndUTC.IsZero() {
		errs = append(errs, "end_utc is required")
	}
	if e.Capacity < 1 {
		errs = append(errs, "capacity must be at least 1")
	}
	if e.VenueID == "" {
		errs = append(errs, "venue_id is required")
	} else if !uuidRegex.MatchString(e.VenueID) {
		errs = append(errs, "venue_id must be a UUID")
	}
	if len(e.CategoryIDs) == 0 {
		errs = append(errs, "category_ids must contain at least one id")
	}
	for _, id := range e.CategoryIDs {
		if !uuidRegex.MatchString(id) {
			errs = append(errs, "category_ids must contain only UUIDs")
			break
		}
	}
	for _, id := range e.TagIDs {
		if !uuidRegex.MatchString(id) {
			errs = append(errs, "tag_ids must contain only UUIDs")
			break
		}
	}
	return errs
}

func (e EventRequest) toUpsert() domain.EventUpsert {
	return domain.EventUpsert{
		Title:       e.Title,
		Description: e.Description,
		StartUTC:    e.StartUTC,
		EndUTC:      e.EndUTC,
		Capacity:    e.Capacity,
		IsPublic:    e.IsPublic,
		VenueID:     e.VenueID,
		CategoryIDs: e.CategoryIDs,
		TagIDs:      e.TagIDs,
	}
}

// CreateEventResponse is the data payload for POST /events (201).
type CreateEventResponse struct {
	ID string `json:"id"`
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  CreateEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListPublicEventsSuccessResponse is the success response envelope for GET /events (200).
type ListPublicEventsSuccessResponse struct {
	Data  []*domain.EventListItem `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// GetEventSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  *domain.EventDetails `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// UpdateEventResponse is the data payload for PUT /events/{eventID} (200).
type UpdateEventResponse struct {
	Status string `json:"status"`
}

// UpdateEventSuccessResponse is the success response envelope for PUT /events/{eventID} (200).
type UpdateEventSuccessResponse struct {
	Data  UpdateEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// DeleteEventSuccessResponse is the success response envelope for DELETE /events/{eventID} (200).
type DeleteEventSuccessResponse struct {
	Data  UpdateEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListMyEventsSuccessResponse is the success response envelope for GET /organizer/events (200).
type ListMyEventsSuccessResponse struct {
	Data  []*domain.EventListItem `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListPublicEvents godoc
// @Summary List public events
// @Description Returns public events with venue name, city, and active registration count. Supports case-insensitive search on title, filtering by city and category, and sorting: popular (most active registrations first), soon (earliest start first), or newest (latest start first, default).
// @Tags events
// @Produce json
// @Param search query string false "Title substring (case-insensitive)"
// @Param city query string false "Venue city substring (case-insensitive)"
// @Param category_id query string false "Category ID (UUID)"
// @Param sort query string false "Sort order: popular, soon, or newest (default)"
// @Success 200 {object} controllers.ListPublicEventsSuccessResponse "data is an array of event summaries"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListPublicEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.PublicEventFilter{
		Search:     strings.TrimSpace(q.Get("search")),
		City:       strings.TrimSpace(q.Get("city")),
		CategoryID: strings.TrimSpace(q.Get("category_id")),
	}
	if filter.CategoryID != "" && !uuidRegex.MatchString(filter.CategoryID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "category_id must be a UUID")
		return
	}
	switch sort := q.Get("sort"); sort {
	case "", string(domain.SortNewest):
		filter.Sort = domain.SortNewest
	case string(domain.SortPopular):
		filter.Sort = domain.SortPopular
	case string(domain.SortSoon):
		filter.Sort = domain.SortSoon
	default:
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "sort must be one of: popular, soon, newest")
		return
	}

	items := []*domain.EventListItem{}
	for item, err := range c.Service.ListPublic(r.Context(), filter) {
		if err != nil {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
			return
		}
		items = append(items, item)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// GetEvent godoc
// @Summary Get event details
// @Description Returns full event details with venue fields, category and tag names, and the active registration count. Private events are visible only to their organizer and admins; other callers receive 404.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event details"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventID must be a UUID")
		return
	}
	details, err := c.Service.GetDetails(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if !details.IsPublic {
		// Private events are indistinguishable from missing ones unless the
		// caller is the organizer or an admin.
		id, ok := middleware.IdentityFromContext(r.Context())
		if !ok || (!id.IsAdmin && id.UserID != details.OrganizerID) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event at a venue with at least one category and optional tags. Start/end instants are normalized to UTC; capacity must not exceed the venue's capacity. The authenticated user becomes the organizer.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the new event id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	eventID, err := c.Service.Create(r.Context(), req.toUpsert(), id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{ID: eventID})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replaces the event's fields and its category/tag sets. Only the organizer or an admin can update. Requires authentication.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param event body EventRequest true "Event data"
// @Success 200 {object} controllers.UpdateEventSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer or admin)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventID must be a UUID")
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	canEdit, err := c.callerOwnsEvent(r, eventID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if err := c.Service.Update(r.Context(), eventID, req.toUpsert(), canEdit); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UpdateEventResponse{Status: "updated"})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event; its category/tag associations and registrations are removed with it. Only the organizer or an admin can delete. Requires authentication.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.DeleteEventSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer or admin)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventID must be a UUID")
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	canDelete, err := c.callerOwnsEvent(r, eventID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if err := c.Service.Delete(r.Context(), eventID, canDelete); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UpdateEventResponse{Status: "deleted"})
}

// ListMyEvents godoc
// @Summary List events organized by the current user
// @Description Returns events where the authenticated user is the organizer, including private ones, newest start first. Requires Bearer token.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMyEventsSuccessResponse "data is an array of event summaries"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizer/events [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListByOrganizer(r.Context(), id.UserID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if events == nil {
		events = []*domain.EventListItem{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// callerOwnsEvent reports whether the caller may modify the event: admins
// always, others only when they are the organizer.
func (c *EventController) callerOwnsEvent(r *http.Request, eventID string, id domain.Identity) (bool, error) {
	if id.IsAdmin {
		return true, nil
	}
	details, err := c.Service.GetDetails(r.Context(), eventID)
	if err != nil {
		return false, err
	}
	return details.OrganizerID == id.UserID, nil
}
