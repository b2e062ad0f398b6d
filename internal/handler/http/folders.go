package http

import (
	"net/http"

	"github.com/MKhiriev/go-quote-keeper/internal/app"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/utils"
	"github.com/MKhiriev/go-quote-keeper/models"
)

func (h *Handler) listRootFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.services.FolderService.ListRootFolders(r.Context(), userIDFromRequest(r))
	if err != nil {
		writeServiceError(w, r, "*Handler.listRootFolders", err)
		return
	}
	if folders == nil {
		folders = []models.FolderSummary{}
	}
	utils.WriteJSON(w, folders, http.StatusOK)
}

func (h *Handler) createRootFolder(w http.ResponseWriter, r *http.Request) {
	var request models.CreateFolderRequest
	if !decodeBody(w, r, "*Handler.createRootFolder", &request) {
		return
	}

	folder, err := h.services.FolderService.CreateRootFolder(r.Context(), userIDFromRequest(r), request.Name)
	if err != nil {
		writeServiceError(w, r, "*Handler.createRootFolder", err)
		return
	}
	utils.WriteJSON(w, folder, http.StatusCreated)
}

func (h *Handler) createSubfolder(w http.ResponseWriter, r *http.Request) {
	parentID, ok := pathID(w, r)
	if !ok {
		return
	}

	var request models.CreateFolderRequest
	if !decodeBody(w, r, "*Handler.createSubfolder", &request) {
		return
	}

	folder, err := h.services.FolderService.CreateSubfolder(r.Context(), userIDFromRequest(r), parentID, request.Name)
	if err != nil {
		writeServiceError(w, r, "*Handler.createSubfolder", err)
		return
	}
	utils.WriteJSON(w, folder, http.StatusCreated)
}

func (h *Handler) getFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	folder, err := h.services.FolderService.GetFolder(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "*Handler.getFolder", err)
		return
	}
	if !ownsFolder(w, r, folder) {
		return
	}
	utils.WriteJSON(w, folder, http.StatusOK)
}

// getFolderTree returns the folder with all its descendants and their
// quotes.
func (h *Handler) getFolderTree(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	tree, err := h.services.FolderService.GetSubtree(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "*Handler.getFolderTree", err)
		return
	}
	if !ownsFolder(w, r, tree.Folder) {
		return
	}
	utils.WriteJSON(w, tree, http.StatusOK)
}

// getFolderPath returns folder IDs from the root down to the folder.
func (h *Handler) getFolderPath(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	folder, err := h.services.FolderService.GetFolder(ctx, id)
	if err != nil {
		writeServiceError(w, r, "*Handler.getFolderPath", err)
		return
	}
	if !ownsFolder(w, r, folder) {
		return
	}

	path, err := h.services.FolderService.FindPathToRoot(ctx, id)
	if err != nil {
		writeServiceError(w, r, "*Handler.getFolderPath", err)
		return
	}
	utils.WriteJSON(w, path, http.StatusOK)
}

func (h *Handler) renameFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var request models.RenameFolderRequest
	if !decodeBody(w, r, "*Handler.renameFolder", &request) {
		return
	}

	folder, err := h.services.FolderService.RenameFolder(r.Context(), userIDFromRequest(r), id, request.Name)
	if err != nil {
		writeServiceError(w, r, "*Handler.renameFolder", err)
		return
	}
	utils.WriteJSON(w, folder, http.StatusOK)
}

func (h *Handler) deleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.FolderService.DeleteFolder(r.Context(), userIDFromRequest(r), id); err != nil {
		writeServiceError(w, r, "*Handler.deleteFolder", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ownsFolder writes 403 and returns false when folder belongs to someone
// other than the caller.
func ownsFolder(w http.ResponseWriter, r *http.Request, folder models.Folder) bool {
	userID := userIDFromRequest(r)
	if folder.OwnerID == userID {
		return true
	}

	logger.FromRequest(r).Warn().
		Int64("folder_id", folder.ID).
		Int64("owner_id", folder.OwnerID).
		Msg("read of a folder owned by another user")
	utils.WriteError(w, app.MsgFolderNotOwned, http.StatusForbidden)
	return false
}
