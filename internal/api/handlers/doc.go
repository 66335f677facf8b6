// Package handlers implements the HTTP handlers of the bokdeok development
// backend: authentication, profile, bookmarks and the listing catalogue.
package handlers

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
