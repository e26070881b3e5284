package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophstore/internal/common"
)

type createFolderRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {

	ownerID, ok := callerID(r)
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var req createFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	folder, err := s.folders.CreateFolder(r.Context(), req.Name, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeFailure(w, http.StatusBadRequest, "A folder with this name already exists.")
			return
		}
		if errors.Is(err, common.ErrorValidation) {
			writeFailure(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, folderResponse{
		Envelope: Envelope{Success: true, Message: "Folder created successfully."},
		Folder:   toFolderInfo(folder),
	})
}

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {

	ownerID, ok := callerID(r)
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	listings, err := s.folders.ListFolders(r.Context(), ownerID)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := folderListResponse{
		Envelope: Envelope{Success: true},
		Folders:  []folderListItem{},
	}
	for _, l := range listings {
		resp.Folders = append(resp.Folders, toFolderListItem(l))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {

	ownerID, ok := callerID(r)
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	err := s.folders.DeleteFolder(r.Context(), r.PathValue("folderId"), ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFoundOrForbidden) {
			writeFailure(w, http.StatusNotFound, "Folder not found.")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeSuccess(w, "Folder deleted successfully.")
}
