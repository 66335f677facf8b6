// Package estate maps backend listing records to the display model.
package estate

import (
	"fmt"

	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

// DefaultType is used for every mapped listing; the backend only serves
// apartments and has no type field.
const DefaultType = "아파트"

const unknownBuildYear = "미상"

// MapHouse converts a backend HouseDTO into an Estate. deals is the
// optional transaction history, newest first.
func MapHouse(dto *domain.HouseDTO, deals ...domain.Deal) domain.Estate {
	title := dto.AptNm
	if title == "" {
		title = DefaultType
	}

	address := dto.RoadNm
	if address == "" {
		address = dto.UmdNm
	}

	buildYear := string(dto.BuildYear)
	descYear := buildYear
	if descYear == "" {
		descYear = unknownBuildYear
	}

	return domain.Estate{
		ID:        domain.ListingID(dto.AptSeq),
		AptSeq:    dto.AptSeq,
		Title:     title,
		Price:     DerivePrice(dto, deals),
		Type:      DefaultType,
		Location:  domain.Location{Lat: coordinate(dto.Latitude), Lng: coordinate(dto.Longitude)},
		Address:   address,
		Desc:      fmt.Sprintf("건축년도: %s, 지번: %s", descYear, dto.Jibun),
		BuildYear: buildYear,
		Jibun:     dto.Jibun,
		RoadNm:    dto.RoadNm,
		UmdNm:     dto.UmdNm,
	}
}

// MapHouses maps a slice of records without transaction history.
func MapHouses(dtos []domain.HouseDTO) []domain.Estate {
	out := make([]domain.Estate, 0, len(dtos))
	for i := range dtos {
		out = append(out, MapHouse(&dtos[i]))
	}
	return out
}

// DerivePrice returns the purchase price from the record's latest deal
// amount, falling back to the first deal. It returns nil when neither
// yields a positive amount; a price is never invented.
func DerivePrice(dto *domain.HouseDTO, deals []domain.Deal) *domain.Price {
	if amount, ok := positive(dto.LatestDealAmount); ok {
		return &domain.Price{Purchase: amount}
	}
	if len(deals) > 0 {
		if amount, ok := positive(deals[0].DealAmount); ok {
			return &domain.Price{Purchase: amount}
		}
	}
	return nil
}

func positive(v domain.FlexValue) (float64, bool) {
	f, ok := v.Float()
	if !ok || f <= 0 {
		return 0, false
	}
	return f, true
}

func coordinate(v domain.FlexValue) float64 {
	f, ok := v.Float()
	if !ok {
		return 0
	}
	return f
}
