package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-quote-keeper/models"
)

const (
	authCookieName    = "qf_auth_token"
	refreshCookieName = "qf_refresh_token"
)

// setAuthCookies stores both tokens of pair as HttpOnly cookies that expire
// together with the tokens.
func (h *Handler) setAuthCookies(w http.ResponseWriter, pair models.TokenPair) {
	http.SetCookie(w, h.cookie(authCookieName, pair.AccessToken, pair.AccessExpiresAt))
	http.SetCookie(w, h.cookie(refreshCookieName, pair.RefreshToken, pair.RefreshExpiresAt))
}

func (h *Handler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{authCookieName, refreshCookieName} {
		c := h.cookie(name, "", time.Unix(0, 0))
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

func (h *Handler) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

// cookieValue returns the value of the named cookie, or "".
func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
