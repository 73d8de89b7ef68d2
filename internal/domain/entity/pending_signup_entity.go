package entity

import "time"

// PendingSignup is an unverified registration waiting for its OTP.
// At most one exists per email; the store evicts it once its TTL elapses.
type PendingSignup struct {
	Email     string    `json:"email"`
	Password  string    `json:"password_hash"`
	OTP       string    `json:"otp"`
	CreatedAt time.Time `json:"created_at"`
}
