package scrap

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/donaldgifford/bokdeok/internal/gateway"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

// listEntry is a bookmark sent as a listing record rather than a bare id.
type listEntry struct {
	ID     domain.ListingID `json:"id"`
	AptSeq string           `json:"aptSeq"`
}

// decodeIDs reads the scrap list from env. Null data is an empty list;
// anything other than an array is an error.
func decodeIDs(env *gateway.Envelope) ([]domain.ListingID, error) {
	if env.IsNull() {
		return []domain.ListingID{}, nil
	}

	var raw []json.RawMessage
	if err := env.Decode(&raw); err != nil {
		return nil, fmt.Errorf("scrap list is not an array: %w", err)
	}

	ids := make([]domain.ListingID, 0, len(raw))
	for _, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) > 0 && elem[0] == '{' {
			var entry listEntry
			if err := json.Unmarshal(elem, &entry); err != nil {
				return nil, fmt.Errorf("decoding scrap entry: %w", err)
			}
			id := entry.ID
			if id == "" {
				id = domain.ListingID(entry.AptSeq)
			}
			if id != "" {
				ids = append(ids, id)
			}
			continue
		}

		var id domain.ListingID
		if err := json.Unmarshal(elem, &id); err != nil {
			return nil, fmt.Errorf("decoding scrap id: %w", err)
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
