package field

import (
	"context"
	"fmt"
	"time"

	"github.com/reoring/wirefield"
)

// timeLayout is the only accepted wire form: UTC designator, second
// precision, no fractional seconds, no offset. The trailing Z is a literal,
// so offset-bearing strings do not parse.
const timeLayout = "2006-01-02T15:04:05Z"

// NewTimestamp returns a field converting between fixed-format timestamp
// strings and time.Time values in UTC.
func NewTimestamp(opts ...Option) *Field {
	return newField(timestampCodec{}, opts)
}

type timestampCodec struct{}

// Decode parses strictly against the fixed layout. Wrong pattern and
// invalid calendar dates both fail with a type_mismatch carrying the raw
// string.
func (timestampCodec) Decode(ctx context.Context, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeTypeMismatch,
			Message: fmt.Sprintf("expected timestamp string, got %T", v),
		}}
	}
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeTypeMismatch,
			Message: fmt.Sprintf("value %q is not a valid timestamp", s),
			Cause:   err,
			Params:  map[string]any{"value": s},
		}}
	}
	return t, nil
}

// Encode requires a time.Time with zero UTC offset; a zoned value is
// refused rather than silently converted. Sub-second precision is
// truncated and the output always ends with the literal Z.
func (timestampCodec) Encode(ctx context.Context, v any) (any, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeTypeMismatch,
			Message: fmt.Sprintf("expected time.Time, got %T", v),
		}}
	}
	if _, offset := t.Zone(); offset != 0 {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeTypeMismatch,
			Message: fmt.Sprintf("refusing to encode %v: timestamp carries a time zone offset", t),
			Hint:    "convert to UTC explicitly before encoding",
		}}
	}
	return t.Truncate(time.Second).UTC().Format(timeLayout), nil
}
