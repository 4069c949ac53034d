package tables

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tandoorclub/foh/internal/staff"
	"github.com/tandoorclub/foh/pkg"
)

const MaxBodyBytes = 1 << 20

const tableEventSource = "foh-tables"

// Handler exposes the intention-revealing table operations over HTTP. The raw
// whole-document replace stays internal to the store.
type Handler struct {
	svc       *Service
	publisher events.Publisher
	logger    apt.Logger
	config    *apt.Config
	tlm       *telemetry.HTTP
}

func NewHandler(svc *Service, publisher events.Publisher, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		svc:       svc,
		publisher: publisher,
		logger:    logger,
		config:    config,
		tlm:       telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tables", func(r chi.Router) {
		r.Use(staff.RequireIdentity)

		r.Get("/", h.ListTables)
		r.Put("/{tableNo}/covers", h.SetCovers)
		r.Post("/{tableNo}/orders", h.AddOrder)
		r.Delete("/{tableNo}/orders/{lineID}", h.RemoveOrder)
		r.Post("/{tableNo}/clear", h.ClearTable)
	})
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

// tableView decorates the live state with the display classification derived
// from the configured floor plan.
type tableView struct {
	Table
	Classification string `json:"classification"`
}

func (h *Handler) view(t Table) tableView {
	return tableView{Table: t, Classification: h.svc.Layout().Classify(t.TableNo)}
}

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListTables")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	tables, err := h.svc.GetTables(ctx)
	if err != nil {
		log.Error("cannot load tables", "error", err)
		h.respondServiceError(w, err)
		return
	}

	views := make([]tableView, len(tables))
	for i, t := range tables {
		views[i] = h.view(t)
	}

	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"tables": views,
	}, nil)
}

func (h *Handler) SetCovers(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SetCovers")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	tableNo, ok := h.parseTableNo(w, r)
	if !ok {
		return
	}

	var req SetCoversRequest
	if !h.decodePayload(w, r, &req) {
		return
	}

	if validationErrors := ValidateSetCovers(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		apt.RespondError(w, http.StatusBadRequest, strings.Join(validationErrors, "; "))
		return
	}

	table, err := h.svc.SetCovers(ctx, tableNo, req.Covers)
	if err != nil {
		log.Error("cannot set covers", "error", err, "table_no", tableNo)
		h.respondServiceError(w, err)
		return
	}

	h.publishTableEvent(ctx, log, pkg.EventCoversSet, table, "", "")
	apt.RespondSuccess(w, h.view(table))
}

func (h *Handler) AddOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	tableNo, ok := h.parseTableNo(w, r)
	if !ok {
		return
	}

	var req AddOrderRequest
	if !h.decodePayload(w, r, &req) {
		return
	}

	// The authenticated identity is the default captain; an explicit captain
	// in the payload wins so admins can correct assignments.
	if strings.TrimSpace(req.Captain) == "" {
		if identity, ok := staff.IdentityFromContext(ctx); ok {
			req.Captain = identity.Username
		}
	}

	if validationErrors := ValidateAddOrder(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		apt.RespondError(w, http.StatusBadRequest, strings.Join(validationErrors, "; "))
		return
	}

	table, line, err := h.svc.AddOrder(ctx, tableNo, req.Item, req.Price, req.Qty, req.Captain)
	if err != nil {
		log.Error("cannot add order", "error", err, "table_no", tableNo)
		h.respondServiceError(w, err)
		return
	}

	h.publishTableEvent(ctx, log, pkg.EventOrderLineAdded, table, line.LineID.String(), line.Item)

	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, map[string]interface{}{
		"table": h.view(table),
		"line":  line,
	})
}

func (h *Handler) RemoveOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RemoveOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	tableNo, ok := h.parseTableNo(w, r)
	if !ok {
		return
	}

	lineID, err := uuid.Parse(chi.URLParam(r, "lineID"))
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid order line ID")
		return
	}

	table, err := h.svc.RemoveOrder(ctx, tableNo, lineID)
	if err != nil {
		log.Error("cannot remove order", "error", err, "table_no", tableNo, "line_id", lineID.String())
		h.respondServiceError(w, err)
		return
	}

	h.publishTableEvent(ctx, log, pkg.EventOrderLineRemoved, table, lineID.String(), "")
	apt.RespondSuccess(w, h.view(table))
}

func (h *Handler) ClearTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ClearTable")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	tableNo, ok := h.parseTableNo(w, r)
	if !ok {
		return
	}

	table, err := h.svc.ClearTable(ctx, tableNo)
	if err != nil {
		log.Error("cannot clear table", "error", err, "table_no", tableNo)
		h.respondServiceError(w, err)
		return
	}

	h.publishTableEvent(ctx, log, pkg.EventTableCleared, table, "", "")
	apt.RespondSuccess(w, h.view(table))
}

func (h *Handler) parseTableNo(w http.ResponseWriter, r *http.Request) (int, bool) {
	tableNo, err := strconv.Atoi(chi.URLParam(r, "tableNo"))
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid table number")
		return 0, false
	}
	return tableNo, true
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

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownTable):
		apt.RespondError(w, http.StatusNotFound, "Table not found")
	case errors.Is(err, ErrUnknownLine):
		apt.RespondError(w, http.StatusNotFound, "Order line not found")
	case errors.Is(err, ErrRevisionConflict):
		apt.RespondError(w, http.StatusConflict, "Table state is changing too fast, retry the update")
	case errors.Is(err, ErrStoreUnavailable):
		apt.RespondError(w, http.StatusServiceUnavailable, "Table state store unavailable, retry shortly")
	default:
		apt.RespondError(w, http.StatusInternalServerError, "Could not update table state")
	}
}

func (h *Handler) publishTableEvent(ctx context.Context, log apt.Logger, eventType string, table Table, lineID, item string) {
	if h.publisher == nil {
		return
	}

	event := pkg.TableEvent{
		EventType:   eventType,
		TableNo:     table.TableNo,
		CaptainName: table.CaptainName,
		Covers:      table.Covers,
		LineID:      lineID,
		Item:        item,
		Source:      tableEventSource,
		OccurredAt:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error("cannot marshal table event", "error", err, "event_type", eventType)
		return
	}

	if err := h.publisher.Publish(ctx, pkg.TableStatusTopic, data); err != nil {
		log.Error("cannot publish table event", "error", err, "event_type", eventType)
	}
}
