package models

import "time"

// File is the metadata row for a stored file. Content bytes live in the
// blob store under StorageKey. OwnerID is denormalized from the folder and
// must always match the owner of FolderID.
type File struct {
	ID          string
	Name        string
	ContentType string
	Size        int64
	StorageKey  string
	FolderID    string
	OwnerID     string
	CreatedAt   time.Time
}
