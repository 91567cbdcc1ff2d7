// AngelaMos | 2026
// handler.go

package ledger

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/reclutahq/recluta-backend/internal/core"
	"github.com/reclutahq/recluta-backend/internal/middleware"
	"github.com/reclutahq/recluta-backend/internal/policy"
	"github.com/reclutahq/recluta-backend/internal/user"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/credits", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/balance", h.GetBalance)
		r.Get("/transactions", h.ListTransactions)
		r.Post("/purchase", h.Purchase)
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/credits", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/grant", h.Grant)
	})
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	balance, err := h.service.Balance(r.Context(), userID)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, BalanceResponse{Balance: balance})
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "page_size", 20)

	transactions, total, err := h.service.Transactions(
		r.Context(),
		userID,
		page,
		pageSize,
	)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.Paginated(
		w,
		ToTransactionResponseList(transactions),
		page,
		pageSize,
		total,
	)
}

func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	balance, err := h.service.Purchase(r.Context(), userID, req.Amount)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, BalanceResponse{Balance: balance})
}

func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	actor := principalFromContext(r)

	var req GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	balance, err := h.service.Grant(
		r.Context(),
		actor,
		req.UserID,
		req.Amount,
		req.Description,
	)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, BalanceResponse{Balance: balance})
}

func principalFromContext(r *http.Request) policy.Principal {
	return policy.Principal{
		UserID: middleware.GetUserID(r.Context()),
		Role:   user.Role(middleware.GetUserRole(r.Context())),
	}
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
