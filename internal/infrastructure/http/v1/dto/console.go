package dto

import (
	"volentia/internal/domain/crud"
)

// ConsoleSaveRequest is the save payload of a console table view.
// Selected mirrors the client's current selection: a selected record
// with a truthy key produces an update, anything else an insert.
type ConsoleSaveRequest struct {
	Record   map[string]any `json:"record" binding:"required"`
	Selected map[string]any `json:"selected"`
}

// ConsoleListResponse is one console table view state.
type ConsoleListResponse struct {
	Table         string              `json:"table"`
	Items         any                 `json:"items"`
	SearchTerm    string              `json:"searchTerm,omitempty"`
	Notifications []crud.Notification `json:"notifications,omitempty"`
}

// ConsoleMutationResponse reports the outcome of a console save/delete.
type ConsoleMutationResponse struct {
	Success       bool                `json:"success"`
	Notifications []crud.Notification `json:"notifications,omitempty"`
}
