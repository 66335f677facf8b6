package mockapi

import (
	_ "embed"
	"encoding/json"
	"fmt"

	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

//go:embed fixtures/houses.json
var housesJSON []byte

// MockUser is the account every mocked login signs in as.
var MockUser = domain.User{
	ID:           "1",
	Email:        "test@bokdeok.com",
	Nickname:     "복덕이유저",
	ProfileImage: "https://via.placeholder.com/150",
}

// MockScraps seeds the mock user's bookmarks when nothing is cached yet.
var MockScraps = []domain.ListingID{"1", "3"}

// Houses returns the canned listing catalogue.
func Houses() ([]domain.HouseDTO, error) {
	var houses []domain.HouseDTO
	if err := json.Unmarshal(housesJSON, &houses); err != nil {
		return nil, fmt.Errorf("decoding house fixtures: %w", err)
	}
	return houses, nil
}
