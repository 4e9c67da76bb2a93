package auth

import (
	"phonebook/internal/domain/user"
)

type Registration struct {
	Email        string
	Password     string
	Subscription user.Subscription
}

type Login struct {
	Email    string
	Password string
}

// Upload is a file already written to temporary storage by the transport.
type Upload struct {
	TempPath     string
	OriginalName string
}
