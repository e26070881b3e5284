package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/gophstore/internal/common"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// parts spill to temp files.
const maxUploadMemory = 32 << 20

func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {

	ownerID, ok := callerID(r)
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid multipart form.")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Missing file part.")
		return
	}
	defer part.Close()

	content, err := io.ReadAll(part)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Could not read file content.")
		return
	}

	folderID := r.FormValue("folderId")
	name := r.FormValue("fileName")
	if name == "" {
		name = header.Filename
	}
	contentType := header.Header.Get("Content-Type")

	file, err := s.files.UploadFile(r.Context(), folderID, name, contentType, content, ownerID)
	if err != nil {
		// Every failed upload is a 400, including the merged
		// missing/foreign-folder case.
		if errors.Is(err, common.ErrorNotFoundOrForbidden) {
			writeFailure(w, http.StatusBadRequest, "Folder not found or you do not have permission.")
			return
		}
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeFailure(w, http.StatusBadRequest, "A file with this name already exists in the folder.")
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

	writeJSON(w, http.StatusOK, fileResponse{
		Envelope: Envelope{Success: true, Message: "File uploaded successfully."},
		File:     toFileInfo(file),
	})
}

func (s *Server) handleDownloadFile(w http.ResponseWriter, r *http.Request) {

	ownerID, ok := callerID(r)
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	content, err := s.files.DownloadFile(r.Context(), r.PathValue("fileId"), ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFoundOrForbidden) {
			writeFailure(w, http.StatusNotFound, "File not found.")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", content.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", content.Name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content.Data)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {

	ownerID, ok := callerID(r)
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	err := s.files.DeleteFile(r.Context(), r.PathValue("fileId"), ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFoundOrForbidden) {
			writeFailure(w, http.StatusNotFound, "File not found.")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeSuccess(w, "File deleted successfully.")
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {

	ownerID, ok := callerID(r)
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	files, err := s.files.ListFiles(r.Context(), ownerID)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := fileListResponse{
		Envelope: Envelope{Success: true},
		Files:    []fileInfo{},
	}
	for _, f := range files {
		resp.Files = append(resp.Files, toFileInfo(f))
	}
	writeJSON(w, http.StatusOK, resp)
}
