// Package record defines the rating record produced by the generator and the
// JSON encoding shared by the bulk file and the shard files.
package record

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	// MinRating is the lowest rating a record can carry
	MinRating = 1.0
	// MaxRating is the highest rating a record can carry
	MaxRating = 5.0
)

// Rating is a score in [MinRating, MaxRating] with one decimal digit.
// It always encodes with exactly one fractional digit, so 3 renders as 3.0.
type Rating float64

// NewRating rounds v half away from zero to one decimal place
func NewRating(v float64) Rating {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return Rating(f)
}

// MarshalJSON renders the rating as a JSON number with one fractional digit
func (r Rating) MarshalJSON() ([]byte, error) {
	return []byte(decimal.NewFromFloat(float64(r)).StringFixed(1)), nil
}

// Record is a single user's rating of a synthetic movie.
// Field order matches the on-disk layout: user_id, title, genres, rating.
type Record struct {
	UserID string   `json:"user_id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
	Rating Rating   `json:"rating"`
}

// Encode serializes records as a pretty-printed JSON array with a two-space
// indent. Non-ASCII and HTML characters are written verbatim and the output
// carries no trailing newline. A nil slice encodes as [].
func Encode(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses a JSON array of records as written by Encode
func Decode(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
