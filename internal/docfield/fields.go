// Package docfield holds lenient field types for decoding records from the
// document store, where timestamps and numbers arrive in mixed shapes.
package docfield

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Location is used for timestamps stored without a zone offset.
var Location = time.UTC

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Instant is a document timestamp that may be missing or malformed.
// Decoding never fails; unparseable input yields an invalid Instant.
type Instant struct {
	Time  time.Time
	Valid bool
}

func At(t time.Time) Instant {
	return Instant{Time: t, Valid: true}
}

// ParseInstant accepts RFC3339 and zone-less date/time strings.
func ParseInstant(s string) Instant {
	s = strings.TrimSpace(s)
	if s == "" {
		return Instant{}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return At(t)
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, Location); err == nil {
			return At(t)
		}
	}
	return Instant{}
}

// UnmarshalJSON handles strings, epoch milliseconds and Firestore
// {seconds, nanoseconds} objects.
func (i *Instant) UnmarshalJSON(b []byte) error {
	*i = Instant{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			*i = ParseInstant(s)
		}
	case '{':
		var ts struct {
			Seconds       *int64 `json:"seconds"`
			Nanoseconds   int64  `json:"nanoseconds"`
			LegacySeconds *int64 `json:"_seconds"`
			LegacyNanos   int64  `json:"_nanoseconds"`
		}
		if err := json.Unmarshal(b, &ts); err != nil {
			return nil
		}
		switch {
		case ts.Seconds != nil:
			*i = At(time.Unix(*ts.Seconds, ts.Nanoseconds))
		case ts.LegacySeconds != nil:
			*i = At(time.Unix(*ts.LegacySeconds, ts.LegacyNanos))
		}
	default:
		ms, err := strconv.ParseFloat(string(b), 64)
		if err == nil && !math.IsNaN(ms) && !math.IsInf(ms, 0) {
			*i = At(time.UnixMilli(int64(ms)))
		}
	}
	return nil
}

func (i Instant) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.Time.Format(time.RFC3339))
}

// Count is an integer-like document field. Numbers and numeric strings are
// accepted; anything else counts as zero.
type Count int64

func (c *Count) UnmarshalJSON(b []byte) error {
	*c = 0
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*c = Count(f)
	return nil
}

// Number is a decimal document field used for money and durations.
// Malformed values decode to zero.
type Number struct {
	decimal.Decimal
}

func NumberOf(d decimal.Decimal) Number {
	return Number{Decimal: d}
}

func NumberFromFloat(f float64) Number {
	return Number{Decimal: decimal.NewFromFloat(f)}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	n.Decimal = decimal.Zero
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	n.Decimal = d
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}
