package entities

import "time"

// Backup is the full export document.
type Backup struct {
	User       *Session  `json:"user"`
	Progress   Progress  `json:"progress"`
	ExportDate time.Time `json:"exportDate"`
}
