package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-quote-keeper/internal/app"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/utils"
	"github.com/MKhiriev/go-quote-keeper/models"
)

// listQuotes supports the folderId, tagId, search, limit and offset query
// parameters.
func (h *Handler) listQuotes(w http.ResponseWriter, r *http.Request) {
	filter, err := quoteFilterFromRequest(r)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listQuotes").Str("query", r.URL.RawQuery).Send()
		utils.WriteError(w, app.MsgInvalidQuery, http.StatusBadRequest)
		return
	}

	quotes, err := h.services.QuoteService.ListQuotes(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, "*Handler.listQuotes", err)
		return
	}
	if quotes == nil {
		quotes = []models.Quote{}
	}
	utils.WriteJSON(w, quotes, http.StatusOK)
}

func quoteFilterFromRequest(r *http.Request) (models.QuoteFilter, error) {
	filter := models.QuoteFilter{
		UserID: userIDFromRequest(r),
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}

	var err error
	if filter.FolderID, err = queryID(r, "folderId"); err != nil {
		return filter, err
	}
	if filter.TagID, err = queryID(r, "tagId"); err != nil {
		return filter, err
	}
	if filter.Limit, err = queryUint(r, "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = queryUint(r, "offset"); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h *Handler) createQuote(w http.ResponseWriter, r *http.Request) {
	var request models.CreateQuoteRequest
	if !decodeBody(w, r, "*Handler.createQuote", &request) {
		return
	}

	quote, err := h.services.QuoteService.CreateQuote(r.Context(), userIDFromRequest(r), request)
	if err != nil {
		writeServiceError(w, r, "*Handler.createQuote", err)
		return
	}
	utils.WriteJSON(w, quote, http.StatusCreated)
}

func (h *Handler) getQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	quote, err := h.services.QuoteService.GetQuote(r.Context(), userIDFromRequest(r), id)
	if err != nil {
		writeServiceError(w, r, "*Handler.getQuote", err)
		return
	}
	utils.WriteJSON(w, quote, http.StatusOK)
}

// updateQuote applies a partial update. Absent fields are kept; null clears
// folderId, backgroundColor and backgroundImage.
func (h *Handler) updateQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var update models.QuoteUpdate
	if !decodeBody(w, r, "*Handler.updateQuote", &update) {
		return
	}
	update.ID = id
	update.UserID = userIDFromRequest(r)

	quote, err := h.services.QuoteService.UpdateQuote(r.Context(), update)
	if err != nil {
		writeServiceError(w, r, "*Handler.updateQuote", err)
		return
	}
	utils.WriteJSON(w, quote, http.StatusOK)
}

func (h *Handler) deleteQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.QuoteService.DeleteQuote(r.Context(), userIDFromRequest(r), id); err != nil {
		writeServiceError(w, r, "*Handler.deleteQuote", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
