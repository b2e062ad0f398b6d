package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-quote-keeper/internal/utils"
	"github.com/MKhiriev/go-quote-keeper/models"
)

// listTags returns builtin tags and the caller's custom tags, optionally
// narrowed with ?type=BUILTIN or ?type=CUSTOM.
func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	tagType := models.TagType(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("type"))))

	tags, err := h.services.TagService.ListTags(r.Context(), userIDFromRequest(r), tagType)
	if err != nil {
		writeServiceError(w, r, "*Handler.listTags", err)
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	utils.WriteJSON(w, tags, http.StatusOK)
}

func (h *Handler) createTag(w http.ResponseWriter, r *http.Request) {
	var request models.CreateTagRequest
	if !decodeBody(w, r, "*Handler.createTag", &request) {
		return
	}

	tag, err := h.services.TagService.CreateTag(r.Context(), userIDFromRequest(r), request)
	if err != nil {
		writeServiceError(w, r, "*Handler.createTag", err)
		return
	}
	utils.WriteJSON(w, tag, http.StatusCreated)
}

func (h *Handler) updateTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var update models.TagUpdate
	if !decodeBody(w, r, "*Handler.updateTag", &update) {
		return
	}
	update.ID = id
	update.UserID = userIDFromRequest(r)

	tag, err := h.services.TagService.UpdateTag(r.Context(), update)
	if err != nil {
		writeServiceError(w, r, "*Handler.updateTag", err)
		return
	}
	utils.WriteJSON(w, tag, http.StatusOK)
}

func (h *Handler) deleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.TagService.DeleteTag(r.Context(), userIDFromRequest(r), id); err != nil {
		writeServiceError(w, r, "*Handler.deleteTag", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
