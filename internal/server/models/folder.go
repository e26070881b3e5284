package models

import "time"

// Folder names are unique per owner.
type Folder struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}
