package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printEstateTable(w io.Writer, estates []domain.Estate, scrapped func(domain.ListingID) bool) error {
	tw := newTabWriter(w)
	tw.writef("ID\tTITLE\tPRICE\tADDRESS\tSCRAP\n")
	for i := range estates {
		mark := ""
		if scrapped(estates[i].ID) {
			mark = "*"
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\n",
			estates[i].ID,
			truncate(estates[i].Title, 30),
			formatPrice(estates[i].Price),
			truncate(estates[i].Address, 30),
			mark,
		)
	}
	return tw.finish()
}

func printEstateDetail(w io.Writer, e *domain.Estate, scrapped bool) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", e.ID)
	tw.writef("Title:\t%s\n", e.Title)
	tw.writef("Type:\t%s\n", e.Type)
	tw.writef("Price:\t%s\n", formatPrice(e.Price))
	tw.writef("Address:\t%s\n", e.Address)
	if e.BuildYear != "" {
		tw.writef("Built:\t%s\n", e.BuildYear)
	}
	tw.writef("Location:\t%.6f, %.6f\n", e.Location.Lat, e.Location.Lng)
	tw.writef("Description:\t%s\n", e.Desc)
	tw.writef("Scrapped:\t%v\n", scrapped)
	return tw.finish()
}

func printUserDetail(w io.Writer, u *domain.User, scraps int) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", u.ID)
	tw.writef("Email:\t%s\n", u.Email)
	tw.writef("Nickname:\t%s\n", u.Nickname)
	tw.writef("Scraps:\t%d\n", scraps)
	return tw.finish()
}

// formatPrice renders a price in 만원 units: "매매 55,000" or
// "보증금 1,000 / 월 50".
func formatPrice(p *domain.Price) string {
	switch {
	case p == nil:
		return "-"
	case p.IsPurchase():
		return "매매 " + thousands(p.Purchase)
	default:
		return "보증금 " + thousands(p.Deposit) + " / 월 " + thousands(p.Monthly)
	}
}

func thousands(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	intPart, frac := s, ""
	for i := range s {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i:]
			break
		}
	}

	neg := len(intPart) > 0 && intPart[0] == '-'
	if neg {
		intPart = intPart[1:]
	}

	out := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i := range len(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, intPart[i])
	}
	if neg {
		return "-" + string(out) + frac
	}
	return string(out) + frac
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
