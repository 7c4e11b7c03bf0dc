package auth

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/financeflow/internal"
	"github.com/frahmantamala/financeflow/internal/transport"
	"github.com/frahmantamala/financeflow/pkg/logger"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthToken, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)

		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteJSON(w, appErr.StatusCode, internal.Response{Error: appErr})
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, token)
}

// Logout exists for symmetry: tokens are stateless, so the client just
// discards its copy.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// AuthMiddleware rejects requests that do not carry a valid token.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := h.Service.ValidateToken(token)
		if err != nil {
			h.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := logger.With(r.Context(), "user", claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
