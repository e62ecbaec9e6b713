package controllers

import (
	"log/slog"
	"net/http"

	"awguestbook/internal/delivery/http/helpers"
	"awguestbook/internal/domain"
)

// GuestRequest is the request body for creating a guest. The event is named
// by the event_id body key (eventId is accepted as an alias) or by the
// event_id query parameter.
type GuestRequest struct {
	EventID      int64   `json:"event_id"`
	EventIDAlias int64   `json:"eventId"`
	Nama         string  `json:"nama"`
	Email        string  `json:"email"`
	Telepon      string  `json:"telepon"`
	Pesan        string  `json:"pesan"`
	TableNumber  *string `json:"tableNumber"`
}

func (r *GuestRequest) eventID() int64 {
	if r.EventID != 0 {
		return r.EventID
	}
	return r.EventIDAlias
}

// UpdateGuestRequest is the request body for PUT /api/guests.
type UpdateGuestRequest struct {
	ID          int64   `json:"id"`
	Nama        string  `json:"nama"`
	Email       string  `json:"email"`
	Telepon     string  `json:"telepon"`
	Pesan       string  `json:"pesan"`
	TableNumber *string `json:"tableNumber"`
}

// CheckinRequest is the request body for POST /api/guests?action=checkin.
// Code is the scanned payload; ID is accepted from trusted clients that
// already verified the code.
type CheckinRequest struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}

type GuestController struct {
	Logger   *slog.Logger
	Guests   domain.GuestService
	Checkins domain.CheckinService
}

func NewGuestController(logger *slog.Logger, guests domain.GuestService, checkins domain.CheckinService) *GuestController {
	return &GuestController{
		Logger:   logger,
		Guests:   guests,
		Checkins: checkins,
	}
}

// Get godoc
// @Summary List, search, verify, and inspect guests
// @Description Without an action: lists guests of the event_id scope (or all owned events), filtered by search. action=verify&code= resolves a scanned code without authentication. action=stats aggregates counts for the scope. action=single&id= returns one guest.
// @Tags guests
// @Produce json
// @Param action query string false "verify, stats, or single"
// @Param event_id query int false "Event scope; omit for all owned events"
// @Param search query string false "Substring match on nama, email, telepon"
// @Param code query string false "Scanned payload (action=verify)"
// @Param id query int false "Guest ID (action=single)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Router /api/guests [get]
func (c *GuestController) Get(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("action") {
	case "":
		c.list(w, r)
	case "verify":
		c.verify(w, r)
	case "stats":
		c.stats(w, r)
	case "single":
		c.single(w, r)
	default:
		helpers.WriteError(w, http.StatusBadRequest, "unknown action")
	}
}

// Post godoc
// @Summary Register a guest or record a check-in
// @Description Without an action: registers a guest into the event scope (requires authentication). action=checkin marks attendance; the scanned code is the credential, so no authentication is needed.
// @Tags guests
// @Accept json
// @Produce json
// @Param action query string false "checkin"
// @Success 200 {object} helpers.APIResponse
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Failure 409 {object} helpers.APIResponse
// @Router /api/guests [post]
func (c *GuestController) Post(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("action") {
	case "":
		c.create(w, r)
	case "checkin":
		c.checkin(w, r)
	default:
		helpers.WriteError(w, http.StatusBadRequest, "unknown action")
	}
}

// Put godoc
// @Summary Update a guest
// @Tags guests
// @Accept json
// @Produce json
// @Param guest body UpdateGuestRequest true "Guest fields; id selects the record"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Router /api/guests [put]
func (c *GuestController) Put(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req UpdateGuestRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	if req.ID <= 0 {
		helpers.WriteError(w, http.StatusBadRequest, "missing guest id")
		return
	}
	guest, err := c.Guests.Update(r.Context(), userID, req.ID, domain.GuestFields{
		Nama:        req.Nama,
		Email:       req.Email,
		Telepon:     req.Telepon,
		Pesan:       req.Pesan,
		TableNumber: req.TableNumber,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccessMessage(w, http.StatusOK, guest, "guest updated")
}

// Delete godoc
// @Summary Delete a guest
// @Tags guests
// @Produce json
// @Param id query int true "Guest ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Router /api/guests [delete]
func (c *GuestController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := queryID(r, "id")
	if id == 0 {
		helpers.WriteError(w, http.StatusBadRequest, "missing guest id")
		return
	}
	if err := c.Guests.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccessMessage(w, http.StatusOK, nil, "guest deleted")
}

func (c *GuestController) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	guests, err := c.Guests.List(r.Context(), userID, queryID(r, "event_id"), r.URL.Query().Get("search"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, guests)
}

func (c *GuestController) single(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := queryID(r, "id")
	if id == 0 {
		helpers.WriteError(w, http.StatusBadRequest, "missing guest id")
		return
	}
	guest, err := c.Guests.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, guest)
}

func (c *GuestController) stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	stats, err := c.Guests.Stats(r.Context(), userID, queryID(r, "event_id"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, stats)
}

func (c *GuestController) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req GuestRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	eventID := req.eventID()
	if eventID == 0 {
		eventID = queryID(r, "event_id")
	}
	guest, err := c.Guests.Create(r.Context(), userID, eventID, domain.GuestFields{
		Nama:        req.Nama,
		Email:       req.Email,
		Telepon:     req.Telepon,
		Pesan:       req.Pesan,
		TableNumber: req.TableNumber,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccessMessage(w, http.StatusCreated, guest, "guest registered")
}

func (c *GuestController) verify(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		helpers.WriteError(w, http.StatusBadRequest, "missing code")
		return
	}
	guest, err := c.Checkins.Verify(r.Context(), code)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccess(w, http.StatusOK, guest)
}

func (c *GuestController) checkin(w http.ResponseWriter, r *http.Request) {
	var req CheckinRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	guestID := req.ID
	if req.Code != "" {
		verified, err := c.Checkins.Verify(r.Context(), req.Code)
		if err != nil {
			writeServiceError(w, r, c.Logger, err)
			return
		}
		guestID = verified.ID
	}
	if guestID <= 0 {
		helpers.WriteError(w, http.StatusBadRequest, "missing guest id or code")
		return
	}
	guest, err := c.Checkins.CheckIn(r.Context(), guestID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteSuccessMessage(w, http.StatusOK, guest, "guest checked in")
}
