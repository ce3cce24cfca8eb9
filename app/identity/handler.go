package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mytheresa/shop-admin/app/logging"
	"github.com/mytheresa/shop-admin/app/web"
	"github.com/mytheresa/shop-admin/models"
)

type UserProvider interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type tokenIssuer interface {
	Issue(user *models.User) (string, error)
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	Roles []string `json:"roles"`
}

type AccountHandler struct {
	users  UserProvider
	tokens tokenIssuer
}

func NewAccountHandler(users UserProvider, tokens tokenIssuer) *AccountHandler {
	return &AccountHandler{users: users, tokens: tokens}
}

func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := web.Validate(input); errs != nil {
		web.WriteError(w, http.StatusBadRequest, "Missing email or password")
		return
	}

	user, err := h.users.FindUserByEmail(r.Context(), input.Email)
	if err != nil {
		if !errors.Is(err, models.ErrUserNotFound) {
			logging.Error(r.Context(), "failed to load user", "error", err)
			web.WriteError(w, http.StatusInternalServerError, "Something went wrong")
			return
		}
		web.WriteError(w, http.StatusUnauthorized, "Invalid login attempt")
		return
	}
	if !CheckPassword(user.PasswordHash, input.Password) {
		web.WriteError(w, http.StatusUnauthorized, "Invalid login attempt")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		logging.Error(r.Context(), "failed to issue token", "user_id", user.ID, "error", err)
		web.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	web.WriteJSON(w, http.StatusOK, LoginResponse{Token: token, Roles: user.RoleNames()})
}
