package domain

import "time"

// Identity is a server-side anonymous identity record
type Identity struct {
	UID       string
	CreatedAt time.Time
}

// Credential is the client's view of its identity
type Credential struct {
	UID   string `json:"uid"`
	Token string `json:"token"`
}

// AttestationToken is a short-lived proof of a genuine app instance
type AttestationToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
