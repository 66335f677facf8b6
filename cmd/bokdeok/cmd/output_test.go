package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		price *domain.Price
		want  string
	}{
		{name: "missing", want: "-"},
		{name: "purchase", price: &domain.Price{Purchase: 55000}, want: "매매 55,000"},
		{name: "rental", price: &domain.Price{Deposit: 1000, Monthly: 50}, want: "보증금 1,000 / 월 50"},
		{name: "fractional", price: &domain.Price{Purchase: 1234567.5}, want: "매매 1,234,567.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatPrice(tt.price))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "경희궁...", truncate("경희궁의아침3단지", 6))
}

func TestPrintEstateTable(t *testing.T) {
	t.Parallel()

	estates := []domain.Estate{
		{ID: "1", Title: "경희궁의아침", Address: "사직로8길 4", Price: &domain.Price{Purchase: 135000}},
		{ID: "2", Title: "광화문스페이스본", Address: "사직로8길 24"},
	}

	var buf bytes.Buffer
	err := printEstateTable(&buf, estates, func(id domain.ListingID) bool { return id == "2" })
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "매매 135,000")
	assert.Contains(t, out, "광화문스페이스본")
	assert.Contains(t, out, "*")
}
