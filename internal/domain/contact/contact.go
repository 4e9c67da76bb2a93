package contact

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Contact struct {
	Id        ulid.ULID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Favorite  bool      `json:"favorite"`
	Owner     ulid.ULID `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Fields is the replaceable part of a contact. Owner and identity are never
// part of an update.
type Fields struct {
	Name     string
	Email    string
	Phone    string
	Favorite bool
}

type Filters struct {
	Favorite *bool
}
