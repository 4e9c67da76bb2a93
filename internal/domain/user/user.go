package user

import (
	"crypto/subtle"
	"time"

	"github.com/oklog/ulid/v2"
)

type User struct {
	Id                ulid.ULID    `json:"id"`
	Email             string       `json:"email"`
	Password          string       `json:"-"`
	Subscription      Subscription `json:"subscription"`
	AvatarURL         string       `json:"avatarURL"`
	Token             string       `json:"-"`
	Verify            bool         `json:"verify"`
	VerificationToken *string      `json:"-"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// HasSession reports whether token is the session currently stored for u.
// An empty stored token means the user is logged out.
func (u *User) HasSession(token string) bool {
	if u.Token == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(u.Token), []byte(token)) == 1
}

type Subscription string

const (
	SubscriptionStarter  Subscription = "starter"
	SubscriptionPro      Subscription = "pro"
	SubscriptionBusiness Subscription = "business"
)

func (s Subscription) IsValid() bool {
	switch s {
	case SubscriptionStarter, SubscriptionPro, SubscriptionBusiness:
		return true
	}
	return false
}

// OrDefault returns s, or starter when s is empty.
func (s Subscription) OrDefault() Subscription {
	if s == "" {
		return SubscriptionStarter
	}
	return s
}

// Profile is the public view of a user.
type Profile struct {
	Email        string       `json:"email"`
	Subscription Subscription `json:"subscription"`
}

func (u *User) Profile() Profile {
	return Profile{Email: u.Email, Subscription: u.Subscription}
}
