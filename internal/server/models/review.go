package models

import "time"

// ReviewRecord is a finished review as stored in the archive.
type ReviewRecord struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Model     string    `json:"model"`
	Code      string    `json:"code"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
}
