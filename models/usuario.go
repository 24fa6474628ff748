package models

import "time"

// Usuario is a directory entry for an application user. The audit subsystem
// only reads it: actor resolution looks usuarios up by username, and audit
// reads join against it for the display name.
type Usuario struct {
	ID             int64     `json:"IdUsuario"`
	Username       string    `json:"Username"`
	NombreCompleto string    `json:"NombreCompleto"`
	CreatedAt      time.Time `json:"CreatedAt"`
}
