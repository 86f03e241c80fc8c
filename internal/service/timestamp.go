package service

import (
	"strconv"
	"strings"

	"github.com/dastanaron/bookmarks-csv/internal/models"
)

// TimestampLayout is the textual form of decoded timestamps
const TimestampLayout = "2006-01-02 15:04:05"

// DecodeTimestamp turns a vendor-epoch microsecond count into "YYYY-MM-DD HH:MM:SS".
// Anything that does not decode is returned unchanged.
func DecodeTimestamp(raw string) string {
	micros, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return raw
	}

	t := models.WebKitTime(micros)
	if t.Year() < 1 || t.Year() > 9999 {
		return raw
	}
	return t.Format(TimestampLayout)
}

// NormalizeTimestamps decodes the given columns of every record in place.
// Extra columns are decoded only when they hold a scalar value.
func NormalizeTimestamps(records []models.Record, fields []string) {
	for i := range records {
		r := &records[i]
		for _, field := range fields {
			if !models.IsRequiredField(field) && !isScalar(r.Extra[field]) {
				continue
			}
			value, ok := r.Get(field)
			if !ok {
				continue
			}
			r.Set(field, DecodeTimestamp(value))
		}
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, interface{ String() string }:
		return true
	}
	return false
}
