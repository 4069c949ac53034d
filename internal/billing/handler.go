package billing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"

	"github.com/tandoorclub/foh/internal/staff"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	workflow *Workflow
	logger   apt.Logger
	config   *apt.Config
	tlm      *telemetry.HTTP
}

func NewHandler(workflow *Workflow, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		workflow: workflow,
		logger:   logger,
		config:   config,
		tlm:      telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/bills", func(r chi.Router) {
		r.Use(staff.RequireAdmin)

		r.Get("/next-number", h.NextBillNumber)
		r.Post("/", h.CommitBill)
		r.Get("/", h.ListBills)
	})
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

func (h *Handler) NextBillNumber(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.NextBillNumber")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	billNo, err := h.workflow.NextBillNumber(ctx)
	if err != nil {
		log.Error("cannot generate bill number", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not generate bill number")
		return
	}

	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"billNo": billNo,
	}, nil)
}

func (h *Handler) CommitBill(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CommitBill")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	req, ok := h.decodeCommitPayload(w, r)
	if !ok {
		return
	}

	if validationErrors := ValidateCommitBill(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		apt.RespondError(w, http.StatusBadRequest, strings.Join(validationErrors, "; "))
		return
	}

	bill, cleared, err := h.workflow.CommitBill(ctx, req)
	if err != nil {
		if errors.Is(err, ErrDuplicateBillNumber) {
			apt.RespondError(w, http.StatusConflict, "Bill number already exists, request a new one")
			return
		}
		log.Error("cannot commit bill", "error", err, "bill_no", req.BillNo)
		apt.RespondError(w, http.StatusInternalServerError, "Could not save bill")
		return
	}

	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, map[string]interface{}{
		"billNo":       bill.BillNo,
		"netAmount":    bill.NetAmount,
		"tableCleared": cleared,
	})
}

func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListBills")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	start, end, err := ParseRange(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	bills, err := h.workflow.ListBills(ctx, start, end)
	if err != nil {
		log.Error("cannot list bills", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve bills")
		return
	}

	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"bills": bills,
	}, nil)
}

func (h *Handler) decodeCommitPayload(w http.ResponseWriter, r *http.Request) (CommitBillRequest, bool) {
	var req CommitBillRequest

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Could not read request body")
		return req, false
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		apt.RespondError(w, http.StatusBadRequest, "Request body is empty")
		return req, false
	}

	if err := json.Unmarshal(body, &req); err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return req, false
	}

	return req, true
}

// ParseRange interprets start/end query values. Both bounds are required and
// inclusive; date-only values widen to whole-day boundaries.
func ParseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	if strings.TrimSpace(startRaw) == "" || strings.TrimSpace(endRaw) == "" {
		return time.Time{}, time.Time{}, errors.New("start and end are required")
	}

	start, err := parseBound(startRaw, false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, err := parseBound(endRaw, true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end must not be before start")
	}

	return start, end, nil
}

func parseBound(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.New("dates must be RFC3339 or YYYY-MM-DD")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
