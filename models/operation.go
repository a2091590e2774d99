package models

import "time"

const (
	OpLoad   = "load"
	OpRemove = "remove"
	OpRename = "rename"
)

// Operation records the outcome of one model command against the filesystem.
type Operation struct {
	Op     string    `json:"op"`
	Path   string    `json:"path"`
	Target string    `json:"target,omitempty"`
	OK     bool      `json:"ok"`
	Error  string    `json:"error,omitempty"`
	At     time.Time `json:"at"`
}
