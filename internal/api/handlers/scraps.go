package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

// ScrapHandler handles the caller's bookmarks.
type ScrapHandler struct {
	backend Backend
}

// NewScrapHandler creates a new ScrapHandler.
func NewScrapHandler(b Backend) *ScrapHandler {
	return &ScrapHandler{backend: b}
}

// ListScrapsInput identifies the caller.
type ListScrapsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

// ListScrapsOutput is the caller's bookmarked listing ids.
type ListScrapsOutput struct {
	Body []domain.ListingID
}

// ScrapItemInput targets one bookmark.
type ScrapItemInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id"              doc:"Listing id (aptSeq)"`
}

// ScrapItemOutput reports a bookmark's state after a change.
type ScrapItemOutput struct {
	Body struct {
		ID       domain.ListingID `json:"id"`
		Scrapped bool             `json:"scrapped"`
	}
}

// List returns the caller's bookmarks.
func (h *ScrapHandler) List(ctx context.Context, input *ListScrapsInput) (*ListScrapsOutput, error) {
	user, err := authenticate(ctx, h.backend, input.Authorization)
	if err != nil {
		return nil, err
	}

	ids, err := h.backend.Scraps(ctx, user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing scraps: " + err.Error())
	}
	if ids == nil {
		ids = []domain.ListingID{}
	}
	return &ListScrapsOutput{Body: ids}, nil
}

// Add bookmarks a listing. Adding twice is not an error.
func (h *ScrapHandler) Add(ctx context.Context, input *ScrapItemInput) (*ScrapItemOutput, error) {
	return h.set(ctx, input, true)
}

// Remove deletes a bookmark. Removing a missing bookmark is not an error.
func (h *ScrapHandler) Remove(ctx context.Context, input *ScrapItemInput) (*ScrapItemOutput, error) {
	return h.set(ctx, input, false)
}

func (h *ScrapHandler) set(ctx context.Context, input *ScrapItemInput, scrapped bool) (*ScrapItemOutput, error) {
	user, err := authenticate(ctx, h.backend, input.Authorization)
	if err != nil {
		return nil, err
	}

	id := domain.ListingID(input.ID)
	if err := h.backend.SetScrap(ctx, user.ID, id, scrapped); err != nil {
		if errors.Is(err, ErrUnknownListing) {
			return nil, huma.Error404NotFound(err.Error())
		}
		return nil, huma.Error500InternalServerError("updating scrap: " + err.Error())
	}

	resp := &ScrapItemOutput{}
	resp.Body.ID = id
	resp.Body.Scrapped = scrapped
	return resp, nil
}

// RegisterScrapRoutes registers bookmark endpoints with the Huma API.
func RegisterScrapRoutes(api huma.API, h *ScrapHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-scraps",
		Method:      http.MethodGet,
		Path:        "/api/v1/scrap",
		Summary:     "List the caller's scraps",
		Tags:        []string{"scrap"},
		Errors:      []int{http.StatusUnauthorized},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "add-scrap",
		Method:      http.MethodPost,
		Path:        "/api/v1/scrap/{id}",
		Summary:     "Scrap a listing",
		Tags:        []string{"scrap"},
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound},
	}, h.Add)

	huma.Register(api, huma.Operation{
		OperationID: "remove-scrap",
		Method:      http.MethodDelete,
		Path:        "/api/v1/scrap/{id}",
		Summary:     "Remove a scrap",
		Tags:        []string{"scrap"},
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound},
	}, h.Remove)
}
