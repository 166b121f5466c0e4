// Package entity defines data structures shared by the web layer.
package entity

// Msg represents a standard API response with success status, message text, and optional data object.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj,omitempty"`
}
