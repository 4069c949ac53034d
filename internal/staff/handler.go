package staff

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	repo   UserRepo
	logger apt.Logger
	config *apt.Config
	tlm    *telemetry.HTTP
}

func NewHandler(repo UserRepo, config *apt.Config, logger apt.Logger) *Handler {
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
	r.Route("/staff", func(r chi.Router) {
		r.With(RequireAdmin).Post("/", h.RegisterUser)
		r.With(RequireIdentity).Get("/captains", h.ListCaptains)
		r.With(RequireAdmin).Delete("/{username}", h.DeleteUser)
	})
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

// captainView is the roster entry exposed to staff: no credential material.
type captainView struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RegisterUser")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	req, ok := h.decodeRegisterPayload(w, r)
	if !ok {
		return
	}

	if validationErrors := ValidateRegister(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		apt.RespondError(w, http.StatusBadRequest, strings.Join(validationErrors, "; "))
		return
	}

	user, err := Register(ctx, h.repo, req.Username, req.Password, req.IsAdmin)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			apt.RespondError(w, http.StatusConflict, "Username already exists")
			return
		}
		log.Error("cannot register user", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not register user")
		return
	}

	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, captainView{Username: user.Username, IsAdmin: user.IsAdmin})
}

func (h *Handler) ListCaptains(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListCaptains")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	users, err := h.repo.List(ctx)
	if err != nil {
		log.Error("cannot list captains", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not list captains")
		return
	}

	captains := make([]captainView, len(users))
	for i, u := range users {
		captains[i] = captainView{Username: u.Username, IsAdmin: u.IsAdmin}
	}

	apt.RespondCollection(w, captains, "captain")
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteUser")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	username := NormalizeUsername(chi.URLParam(r, "username"))
	if username == "" {
		apt.RespondError(w, http.StatusBadRequest, "Username is required")
		return
	}

	identity, _ := IdentityFromContext(ctx)
	if identity.Username == username {
		apt.RespondError(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	if err := h.repo.DeleteByUsername(ctx, username); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			apt.RespondError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error("cannot delete user", "error", err, "username", username)
		apt.RespondError(w, http.StatusInternalServerError, "Could not delete user")
		return
	}

	apt.RespondSuccess(w, map[string]interface{}{
		"deleted": username,
	})
}

func (h *Handler) decodeRegisterPayload(w http.ResponseWriter, r *http.Request) (RegisterRequest, bool) {
	var req RegisterRequest

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
