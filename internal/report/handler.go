package report

import (
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"

	"github.com/tandoorclub/foh/internal/billing"
	"github.com/tandoorclub/foh/internal/staff"
)

type Handler struct {
	bills  billing.BillRepo
	logger apt.Logger
	config *apt.Config
	tlm    *telemetry.HTTP
}

func NewHandler(bills billing.BillRepo, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		bills:  bills,
		logger: logger,
		config: config,
		tlm:    telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(staff.RequireAdmin)
		r.Get("/sales", h.SalesReport)
	})
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

func (h *Handler) SalesReport(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SalesReport")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	start, end, err := billing.ParseRange(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	bills, err := h.bills.ListByTimestampRange(ctx, start, end)
	if err != nil {
		log.Error("error loading bills for sales report", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not build sales report")
		return
	}

	summary := Summarize(bills, start, end)
	apt.RespondSuccess(w, summary)
}
