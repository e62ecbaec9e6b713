package controllers

import (
	"log/slog"
	"net/http"

	"awguestbook/internal/delivery/http/helpers"
	"awguestbook/internal/domain"
)

// EventRequest is the request body for creating an event.
type EventRequest struct {
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	EventDate      *string `json:"eventDate"`
	EventTime      *string `json:"eventTime"`
	Location       *string `json:"location"`
	PrimaryColor   string  `json:"primaryColor"`
	SecondaryColor string  `json:"secondaryColor"`
}

// UpdateEventRequest is the request body for PUT /api/events.
type UpdateEventRequest struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	EventDate      *string `json:"eventDate"`
	EventTime      *string `json:"eventTime"`
	Location       *string `json:"location"`
	PrimaryColor   string  `json:"primaryColor"`
	SecondaryColor string  `json:"secondaryColor"`
	IsArchived     bool    `json:"isArchived"`
}

// SwitchEventRequest is the request body for POST /api/events?action=switch.
type SwitchEventRequest struct {
	EventID int64 `json:"eventId"`
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

// Get godoc
// @Summary List events, fetch one, or get attendance stats
// @Description Without an action: lists the caller's events, newest first; archived ones are included only with archived=true. id= returns a single event. action=stats&id= returns attendance aggregates including the hourly check-in histogram for today.
// @Tags events
// @Produce json
// @Param action query string false "stats"
// @Param id query int false "Event ID"
// @Param archived query string false "true to include archived events"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Router /api/events [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	switch r.URL.Query().Get("action") {
	case "":
		if id := queryID(r, "id"); id != 0 {
			c.single(w, r, userID, id)
			return
		}
		c.list(w, r, userID)
	case "stats":
		c.stats(w, r, userID)
	default:
		helpers.WriteError(w, http.StatusBadRequest, "unknown action")
	}
}

// Post godoc
// @Summary Create an event or switch the active one
// @Description Without an action: creates an event owned by the caller. action=switch validates ownership of the requested event and returns it; the active-event preference itself lives in the client.
// @Tags events
// @Accept json
// @Produce json
// @Param action query string false "switch"
// @Success 200 {object} helpers.APIResponse
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Router /api/events [post]
func (c *EventController) Post(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	switch r.URL.Query().Get("action") {
	case "":
		c.create(w, r, userID)
	case "switch":
		c.switchEvent(w, r, userID)
	default:
		helpers.WriteError(w, http.StatusBadRequest, "unknown action")
	}
}

// Put godoc
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Param event body UpdateEventRequest true "Event fields; id selects the record"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Router /api/events [put]
func (c *EventController) Put(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	if req.ID <= 0 {
		helpers.WriteError(w, http.StatusBadRequest, "missing event id")
		return
	}
	event, err := c.Service.Update(r.Context(), userID, req.ID, domain.EventFields{
		Name:           req.Name,
		Description:    req.Description,
		EventDate:      req.EventDate,
		EventTime:      req.EventTime,
		Location:       req.Location,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		IsArchived:     req.IsArchived,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccessMessage(w, http.StatusOK, event, "event updated")
}

// Delete godoc
// @Summary Delete an event and all of its guests
// @Tags events
// @Produce json
// @Param id query int true "Event ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Router /api/events [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := queryID(r, "id")
	if id == 0 {
		helpers.WriteError(w, http.StatusBadRequest, "missing event id")
		return
	}
	if err := c.Service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccessMessage(w, http.StatusOK, nil, "event deleted")
}

func (c *EventController) list(w http.ResponseWriter, r *http.Request, userID int64) {
	includeArchived := r.URL.Query().Get("archived") == "true"
	events, err := c.Service.List(r.Context(), userID, includeArchived)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, events)
}

func (c *EventController) single(w http.ResponseWriter, r *http.Request, userID, eventID int64) {
	event, err := c.Service.Get(r.Context(), userID, eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, event)
}

func (c *EventController) stats(w http.ResponseWriter, r *http.Request, userID int64) {
	id := queryID(r, "id")
	if id == 0 {
		id = queryID(r, "event_id")
	}
	stats, err := c.Service.Stats(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, stats)
}

func (c *EventController) create(w http.ResponseWriter, r *http.Request, userID int64) {
	var req EventRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	event, err := c.Service.Create(r.Context(), userID, domain.EventFields{
		Name:           req.Name,
		Description:    req.Description,
		EventDate:      req.EventDate,
		EventTime:      req.EventTime,
		Location:       req.Location,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccessMessage(w, http.StatusCreated, event, "event created")
}

func (c *EventController) switchEvent(w http.ResponseWriter, r *http.Request, userID int64) {
	var req SwitchEventRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	if req.EventID <= 0 {
		helpers.WriteError(w, http.StatusBadRequest, "missing event id")
		return
	}
	event, err := c.Service.Switch(r.Context(), userID, req.EventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccessMessage(w, http.StatusOK, event, "event switched")
}
