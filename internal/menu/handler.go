package menu

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tandoorclub/foh/internal/staff"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	repo   MenuItemRepo
	logger apt.Logger
	config *apt.Config
	tlm    *telemetry.HTTP
}

func NewHandler(repo MenuItemRepo, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
		config: config,
		tlm:    telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/menu/items", func(r chi.Router) {
		r.With(staff.RequireIdentity).Get("/", h.ListMenuItems)
		r.With(staff.RequireIdentity).Get("/{id}", h.GetMenuItem)
		r.With(staff.RequireAdmin).Post("/", h.CreateMenuItem)
		r.With(staff.RequireAdmin).Put("/{id}", h.UpdateMenuItem)
		r.With(staff.RequireAdmin).Delete("/{id}", h.DeleteMenuItem)
	})
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateMenuItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req MenuItemCreateRequest
	if !h.decodePayload(w, r, &req) {
		return
	}

	if validationErrors := ValidateMenuItemCreate(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		apt.RespondError(w, http.StatusBadRequest, strings.Join(validationErrors, "; "))
		return
	}

	item := NewMenuItem()
	item.Name = strings.TrimSpace(req.Name)
	item.Category = req.Category
	item.Type = req.Type
	item.Price = req.Price
	item.Description = req.Description
	item.BeforeCreate()

	if err := h.repo.Create(ctx, item); err != nil {
		log.Error("cannot create menu item", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create menu item")
		return
	}

	links := apt.RESTfulLinksFor(item)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, item, links...)
}

func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetMenuItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r)
	if !ok {
		return
	}

	item, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Error("error loading menu item", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve menu item")
		return
	}

	if item == nil {
		apt.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	links := apt.RESTfulLinksFor(item)
	apt.RespondSuccess(w, item, links...)
}

func (h *Handler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListMenuItems")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	category := r.URL.Query().Get("category")

	var items []*MenuItem
	var err error

	if category != "" {
		items, err = h.repo.ListByCategory(ctx, category)
	} else {
		items, err = h.repo.List(ctx)
	}

	if err != nil {
		log.Error("error retrieving menu items", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve menu items")
		return
	}

	apt.RespondCollection(w, items, "menu-item")
}

func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateMenuItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r)
	if !ok {
		return
	}

	var req MenuItemUpdateRequest
	if !h.decodePayload(w, r, &req) {
		return
	}

	if validationErrors := ValidateMenuItemUpdate(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		apt.RespondError(w, http.StatusBadRequest, strings.Join(validationErrors, "; "))
		return
	}

	item, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Error("error loading menu item", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve menu item")
		return
	}

	if item == nil {
		apt.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	item.Name = strings.TrimSpace(req.Name)
	item.Category = req.Category
	item.Type = req.Type
	item.Price = req.Price
	item.Description = req.Description
	item.BeforeUpdate()

	if err := h.repo.Save(ctx, item); err != nil {
		log.Error("cannot update menu item", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update menu item")
		return
	}

	links := apt.RESTfulLinksFor(item)
	apt.RespondSuccess(w, item, links...)
}

func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteMenuItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		log.Error("cannot delete menu item", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	apt.RespondSuccess(w, map[string]interface{}{
		"deleted": id.String(),
	})
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid menu item ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) decodePayload(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Could not read request body")
		return false
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		apt.RespondError(w, http.StatusBadRequest, "Request body is empty")
		return false
	}

	if err := json.Unmarshal(body, out); err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}

	return true
}
