// Package objectkey implements the storage key scheme shared by the raw and
// processed storage areas. Raw and processed objects differ only in bucket
// and top-level prefix; the trailing {data_type}/{date}/{filename} triple is
// identical on both sides.
package objectkey

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// UnclassifiedSegment marks processed keys derived from a raw key that did
// not follow the {prefix}/{data_type}/{date}/{filename} convention.
const UnclassifiedSegment = "unclassified"

// Raw builds the key for a raw object: {prefix}/{dataType}/{date}/{filename}.
func Raw(prefix, dataType, date, filename string) string {
	return fmt.Sprintf("%s/%s/%s/%s", prefix, dataType, date, filename)
}

// FileName builds the raw object filename {dataType}_{date}_{HHMMSS}.json.
// The time component keeps same-day runs from colliding.
func FileName(dataType, date string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.json", dataType, date, now.UTC().Format("150405"))
}

// Processed derives the processed-area key for a raw object key. Keys with
// at least four segments keep their trailing {data_type}/{date}/{filename}
// triple under the processed prefix; anything shorter falls back to an
// "unclassified" key so malformed inputs stay detectable downstream.
func Processed(originalKey, processedPrefix string) string {
	parts := strings.Split(originalKey, "/")
	if len(parts) >= 4 {
		n := len(parts)
		return fmt.Sprintf("%s/%s/%s/%s", processedPrefix, parts[n-3], parts[n-2], parts[n-1])
	}
	return fmt.Sprintf("%s/%s/%s", processedPrefix, UnclassifiedSegment, path.Base(originalKey))
}

// DataType infers the data type from a raw object key. It is the second
// segment when the first segment matches the expected raw prefix; anything
// else is "unknown".
func DataType(key, rawPrefix string) string {
	parts := strings.Split(key, "/")
	if len(parts) > 1 && parts[0] == rawPrefix {
		return parts[1]
	}
	return "unknown"
}
