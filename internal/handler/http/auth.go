package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-quote-keeper/internal/app"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/service"
	"github.com/MKhiriev/go-quote-keeper/internal/utils"
	"github.com/MKhiriev/go-quote-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if !decodeBody(w, r, "*Handler.register", &credentials) {
		return
	}

	user, pair, err := h.services.AuthService.Register(r.Context(), credentials)
	if err != nil {
		writeServiceError(w, r, "*Handler.register", err)
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", user.UserID).Msg("user registered")
	h.writeAuthResponse(w, &user, pair, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if !decodeBody(w, r, "*Handler.login", &credentials) {
		return
	}

	user, pair, err := h.services.AuthService.Login(r.Context(), credentials)
	if err != nil {
		writeServiceError(w, r, "*Handler.login", err)
		return
	}

	logger.FromRequest(r).Debug().Int64("user_id", user.UserID).Msg("user successfully logged in")
	h.writeAuthResponse(w, &user, pair, http.StatusOK)
}

// refresh rotates the refresh token taken from the body or, when the body
// has none, from the refresh cookie.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var request models.RefreshRequest
	if !decodeOptionalBody(w, r, "*Handler.refresh", &request) {
		return
	}

	token := request.RefreshToken
	if token == "" {
		token = cookieValue(r, refreshCookieName)
	}
	if token == "" {
		utils.WriteError(w, app.MsgRefreshTokenRequired, http.StatusUnauthorized)
		return
	}

	pair, err := h.services.AuthService.Refresh(r.Context(), token)
	if err != nil {
		h.clearAuthCookies(w)
		writeServiceError(w, r, "*Handler.refresh", err)
		return
	}

	h.writeAuthResponse(w, nil, pair, http.StatusOK)
}

// logout revokes the refresh token, if any, and clears the auth cookies.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var request models.RefreshRequest
	if !decodeOptionalBody(w, r, "*Handler.logout", &request) {
		return
	}

	token := request.RefreshToken
	if token == "" {
		token = cookieValue(r, refreshCookieName)
	}

	if err := h.services.AuthService.Logout(r.Context(), token); err != nil {
		writeServiceError(w, r, "*Handler.logout", err)
		return
	}

	h.clearAuthCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

// status reports whether the request carries a valid access token. It never
// answers 401.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, err := accessTokenFromRequest(r)
	if err != nil {
		utils.WriteJSON(w, models.AuthStatus{}, http.StatusOK)
		return
	}

	userID, err := h.services.AuthService.ParseAccessToken(ctx, token)
	if err != nil {
		log.Debug().Err(err).Str("func", "*Handler.status").Send()
		utils.WriteJSON(w, models.AuthStatus{}, http.StatusOK)
		return
	}

	user, err := h.services.UserService.GetProfile(ctx, userID)
	if errors.Is(err, service.ErrNotFound) {
		utils.WriteJSON(w, models.AuthStatus{}, http.StatusOK)
		return
	}
	if err != nil {
		writeServiceError(w, r, "*Handler.status", err)
		return
	}

	utils.WriteJSON(w, models.AuthStatus{IsLoggedIn: true, User: &user}, http.StatusOK)
}

// writeAuthResponse sends pair in the body, the Authorization header and the
// auth cookies.
func (h *Handler) writeAuthResponse(w http.ResponseWriter, user *models.User, pair models.TokenPair, statusCode int) {
	h.setAuthCookies(w, pair)
	w.Header().Set("Authorization", service.TokenTypeBearer+" "+pair.AccessToken)
	utils.WriteJSON(w, models.AuthResponse{User: user, TokenPair: pair}, statusCode)
}
