package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// RenderValue converts a decoded JSON value into its cell text.
// Strings pass through, numbers keep their literal form, null is empty,
// objects and arrays become compact JSON.
func RenderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
