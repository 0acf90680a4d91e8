package todo

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidBlob is returned by Decode when the stored value is not a valid
// task collection.
var ErrInvalidBlob = errors.New("invalid task blob")

// Encode serializes the full collection as a compact JSON array.
// A nil collection encodes as [].
func Encode(c Collection) (string, error) {
	if c == nil {
		c = Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal tasks: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored blob using schema validation.
func Decode(blob string) (Collection, error) {
	return DecodeWith(blob, ValidationOptions{Schema: true})
}

// DecodeWith parses a stored blob. Any validation failure is reported as
// ErrInvalidBlob wrapping the first ValidationError.
func DecodeWith(blob string, opts ValidationOptions) (Collection, error) {
	data := []byte(blob)
	result := Validate(data, opts)
	if !result.Valid {
		if len(result.Errors) == 0 {
			return nil, ErrInvalidBlob
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidBlob, result.Errors[0])
	}

	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBlob, err)
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}
