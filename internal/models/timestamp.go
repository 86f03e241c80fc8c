package models

import (
	"strconv"
	"time"
)

// WebKitEpochOffset is the number of seconds between 1601-01-01 and 1970-01-01 UTC.
const WebKitEpochOffset int64 = 11644473600

// WebKitTime converts microseconds since 1601-01-01 UTC to a time.
func WebKitTime(micros int64) time.Time {
	sec := micros / 1_000_000
	rem := micros % 1_000_000
	if rem < 0 {
		sec--
		rem += 1_000_000
	}
	return time.Unix(sec-WebKitEpochOffset, rem*1000).UTC()
}

// WebKitFromUnixMicros renders Unix-epoch microseconds as a vendor-epoch timestamp string.
func WebKitFromUnixMicros(micros int64) string {
	return strconv.FormatInt(micros+WebKitEpochOffset*1_000_000, 10)
}

// WebKitFromUnixSeconds renders Unix-epoch seconds as a vendor-epoch timestamp string.
func WebKitFromUnixSeconds(sec int64) string {
	return WebKitFromUnixMicros(sec * 1_000_000)
}
