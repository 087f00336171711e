package utils

import (
	"errors"

	"github.com/google/uuid"
)

var errNilUUID = errors.New("nil UUID")

// ParseUUID rejects the nil UUID as well as malformed input.
func ParseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, errNilUUID
	}
	return id, nil
}
