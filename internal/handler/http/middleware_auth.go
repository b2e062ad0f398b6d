package http

import (
	"net/http"

	"github.com/MKhiriev/go-quote-keeper/internal/app"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// The access token is taken from the "Authorization: Bearer" header or, when
// the header is absent, from the auth cookie. It is validated via
// [service.AuthService.ParseAccessToken]; on success the user ID is stored in
// the request context under [utils.UserIDCtxKey] and the request logger gains
// a "user_id" field.
//
// Requests without a usable token are rejected with 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := accessTokenFromRequest(r)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Send()
			utils.WriteError(w, app.MsgAuthRequired, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		userID, err := h.services.AuthService.ParseAccessToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Msg("error occurred during parsing token")
			utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		ctx = utils.WithUserID(ctx, userID)
		ctx = log.With().Int64("user_id", userID).Logger().WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accessTokenFromRequest prefers the Authorization header over the cookie.
// A malformed header is an error even when the cookie is set.
func accessTokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		return utils.ParseBearerToken(header)
	}
	if token := cookieValue(r, authCookieName); token != "" {
		return token, nil
	}
	return "", ErrNoAccessToken
}

// userIDFromRequest returns the ID stored by auth. Handlers behind auth can
// rely on it being present.
func userIDFromRequest(r *http.Request) int64 {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	return userID
}
