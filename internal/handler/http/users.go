package http

import (
	"net/http"

	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/utils"
	"github.com/MKhiriev/go-quote-keeper/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.UserService.GetProfile(r.Context(), userIDFromRequest(r))
	if err != nil {
		writeServiceError(w, r, "*Handler.getProfile", err)
		return
	}
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var request models.ProfileUpdateRequest
	if !decodeBody(w, r, "*Handler.updateProfile", &request) {
		return
	}

	user, err := h.services.UserService.UpdateProfile(r.Context(), userIDFromRequest(r), request)
	if err != nil {
		writeServiceError(w, r, "*Handler.updateProfile", err)
		return
	}
	utils.WriteJSON(w, user, http.StatusOK)
}

// updateTier changes the subscription tier. Payment is out of scope; any
// authenticated user may pick any tier.
func (h *Handler) updateTier(w http.ResponseWriter, r *http.Request) {
	var request models.TierUpdateRequest
	if !decodeBody(w, r, "*Handler.updateTier", &request) {
		return
	}

	user, err := h.services.UserService.UpdateTier(r.Context(), userIDFromRequest(r), request.Tier)
	if err != nil {
		writeServiceError(w, r, "*Handler.updateTier", err)
		return
	}

	logger.FromRequest(r).Info().Str("tier", string(user.Tier)).Msg("tier changed")
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	var request models.DeleteAccountRequest
	if !decodeBody(w, r, "*Handler.deleteAccount", &request) {
		return
	}

	if err := h.services.UserService.DeleteAccount(r.Context(), userIDFromRequest(r), request.Password); err != nil {
		writeServiceError(w, r, "*Handler.deleteAccount", err)
		return
	}

	h.clearAuthCookies(w)
	w.WriteHeader(http.StatusNoContent)
}
