package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

// EstateHandler serves the listing catalogue.
type EstateHandler struct {
	backend Backend
}

// NewEstateHandler creates a new EstateHandler.
func NewEstateHandler(b Backend) *EstateHandler {
	return &EstateHandler{backend: b}
}

// ListEstatesInput is empty; the catalogue is public.
type ListEstatesInput struct{}

// ListEstatesOutput is every listing in backend form.
type ListEstatesOutput struct {
	Body []domain.HouseDTO
}

// GetEstateInput identifies one listing.
type GetEstateInput struct {
	ID string `path:"id" doc:"Listing id (aptSeq)"`
}

// GetEstateOutput is a single listing.
type GetEstateOutput struct {
	Body domain.HouseDTO
}

// List returns the catalogue.
func (h *EstateHandler) List(ctx context.Context, _ *ListEstatesInput) (*ListEstatesOutput, error) {
	houses, err := h.backend.Houses(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing estates: " + err.Error())
	}
	if houses == nil {
		houses = []domain.HouseDTO{}
	}
	return &ListEstatesOutput{Body: houses}, nil
}

// Get returns one listing.
func (h *EstateHandler) Get(ctx context.Context, input *GetEstateInput) (*GetEstateOutput, error) {
	houses, err := h.backend.Houses(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing estates: " + err.Error())
	}
	for i := range houses {
		if houses[i].AptSeq == input.ID {
			return &GetEstateOutput{Body: houses[i]}, nil
		}
	}
	return nil, huma.Error404NotFound("listing not found")
}

// RegisterEstateRoutes registers catalogue endpoints with the Huma API.
func RegisterEstateRoutes(api huma.API, h *EstateHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-estates",
		Method:      http.MethodGet,
		Path:        "/api/v1/estate",
		Summary:     "List estates",
		Tags:        []string{"estate"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "get-estate",
		Method:      http.MethodGet,
		Path:        "/api/v1/estate/{id}",
		Summary:     "Get an estate",
		Tags:        []string{"estate"},
		Errors:      []int{http.StatusNotFound},
	}, h.Get)
}
