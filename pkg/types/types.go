// Package domain defines the core business types for the bokdeok client.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ListingID identifies a listing. Backends send either numeric ids or
// aptSeq strings, so the value is kept as an opaque comparable key.
type ListingID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ListingID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding listing id: %w", err)
		}
		*id = ListingID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding listing id: %w", err)
	}
	*id = ListingID(n.String())
	return nil
}

// String returns the id as a string.
func (id ListingID) String() string { return string(id) }

// UserID identifies a user. Like ListingID it may arrive as a number.
type UserID = ListingID

// User is the authenticated user's profile.
type User struct {
	ID           UserID `json:"id,omitempty"`
	Email        string `json:"email"`
	Nickname     string `json:"nickname,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Credentials are submitted to the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterForm is submitted to the registration endpoint.
type RegisterForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// Price is either a rental (deposit and monthly) or a purchase price, in
// units of 10,000 KRW.
type Price struct {
	Deposit  float64 `json:"deposit,omitempty"`
	Monthly  float64 `json:"monthly,omitempty"`
	Purchase float64 `json:"purchase,omitempty"`
}

// IsPurchase reports whether the price is a purchase price.
func (p *Price) IsPurchase() bool {
	return p.Purchase > 0
}

// Location is a WGS84 coordinate.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Estate is the display representation of a listing.
type Estate struct {
	ID        ListingID `json:"id"`
	AptSeq    string    `json:"aptSeq,omitempty"`
	Title     string    `json:"title"`
	Price     *Price    `json:"price"`
	Type      string    `json:"type"`
	Location  Location  `json:"location"`
	Address   string    `json:"address"`
	Desc      string    `json:"desc"`
	BuildYear string    `json:"buildYear,omitempty"`
	Jibun     string    `json:"jibun,omitempty"`
	RoadNm    string    `json:"roadNm,omitempty"`
	UmdNm     string    `json:"umdNm,omitempty"`
}

// HouseDTO is the backend's listing record. Numeric fields are kept as
// raw text because the backend is inconsistent about quoting them.
type HouseDTO struct {
	AptSeq           string    `json:"aptSeq"`
	AptNm            string    `json:"aptNm,omitempty"`
	Latitude         FlexValue `json:"latitude,omitempty"`
	Longitude        FlexValue `json:"longitude,omitempty"`
	RoadNm           string    `json:"roadNm,omitempty"`
	UmdNm            string    `json:"umdNm,omitempty"`
	BuildYear        FlexValue `json:"buildYear,omitempty"`
	Jibun            string    `json:"jibun,omitempty"`
	LatestDealAmount FlexValue `json:"latestDealAmount,omitempty"`
}

// Deal is one entry of a listing's transaction history.
type Deal struct {
	DealAmount FlexValue `json:"dealAmount"`
	DealYear   FlexValue `json:"dealYear,omitempty"`
	DealMonth  FlexValue `json:"dealMonth,omitempty"`
}

// FlexValue holds a scalar that may be sent as a JSON string or number.
type FlexValue string

// UnmarshalJSON accepts strings, numbers and null.
func (v *FlexValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*v = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FlexValue(s)
	default:
		*v = FlexValue(data)
	}
	return nil
}

// Float parses the value as a finite decimal number, ignoring thousands
// separators and surrounding whitespace. NaN, infinities and hex literals
// are rejected.
func (v FlexValue) Float() (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(string(v), ",", ""))
	if s == "" || strings.ContainsAny(s, "xX") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
