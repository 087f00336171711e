package entity

import (
	"time"

	"github.com/google/uuid"
)

// BaseNoUpdate is embedded by records whose creation time is immutable and
// that are hard-deleted.
type BaseNoUpdate struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
