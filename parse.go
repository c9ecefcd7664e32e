package wirefield

import (
	"context"

	gojson "github.com/goccy/go-json"
)

// FromJSON decodes a JSON object document into a fresh instance of t.
func FromJSON(ctx context.Context, t *Type, b []byte) (*Object, error) {
	var data map[string]any
	if err := gojson.Unmarshal(b, &data); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "invalid JSON document", Cause: err}}
	}
	return t.FromDict(ctx, data)
}

// ToJSON serializes an instance to a JSON object document.
func ToJSON(ctx context.Context, obj *Object) ([]byte, error) {
	data, err := obj.ToDict(ctx)
	if err != nil {
		return nil, err
	}
	b, err := gojson.Marshal(data)
	if err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "encoding JSON document", Cause: err}}
	}
	return b, nil
}
