package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophstore/internal/server/models"
	"github.com/dmitrijs2005/gophstore/internal/server/services"
)

// Envelope is the uniform wrapper returned by every JSON endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type tokenResponse struct {
	Envelope
	Token string `json:"token"`
}

type fileInfo struct {
	FileID      string    `json:"fileId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	FolderID    string    `json:"folderId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type folderInfo struct {
	FolderID  string    `json:"folderId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type folderResponse struct {
	Envelope
	Folder folderInfo `json:"folder"`
}

type folderListItem struct {
	folderInfo
	Files []fileInfo `json:"files"`
}

type folderListResponse struct {
	Envelope
	Folders []folderListItem `json:"folders"`
}

type fileResponse struct {
	Envelope
	File fileInfo `json:"file"`
}

type fileListResponse struct {
	Envelope
	Files []fileInfo `json:"files"`
}

func toFileInfo(f *models.File) fileInfo {
	return fileInfo{
		FileID:      f.ID,
		FileName:    f.Name,
		ContentType: f.ContentType,
		Size:        f.Size,
		FolderID:    f.FolderID,
		CreatedAt:   f.CreatedAt,
	}
}

func toFolderInfo(f *models.Folder) folderInfo {
	return folderInfo{
		FolderID:  f.ID,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
	}
}

func toFolderListItem(l *services.FolderListing) folderListItem {
	item := folderListItem{folderInfo: toFolderInfo(l.Folder), Files: []fileInfo{}}
	for _, f := range l.Files {
		item.Files = append(item.Files, toFileInfo(f))
	}
	return item
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}
