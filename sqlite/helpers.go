package sqlite

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cespare/xxhash/v2"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// hashContent computes xxHash of content and returns it as hex.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

// paginate applies LIMIT and OFFSET when they are > 0. SQLite only accepts
// OFFSET after a LIMIT, so an offset alone gets an unbounded limit.
func paginate(b sq.SelectBuilder, limit, offset int) sq.SelectBuilder {
	switch {
	case limit > 0:
		b = b.Limit(uint64(limit))
	case offset > 0:
		b = b.Limit(math.MaxInt64)
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}
	return b
}

// marshalJSON encodes v, writing nil slices and maps as their empty form.
func marshalJSON(v any, empty string) (string, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(buf) == "null" {
		return empty, nil
	}
	return string(buf), nil
}

func unmarshalJSON(data, fieldName string, v any) error {
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return nil
}
