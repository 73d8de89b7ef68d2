package helpers

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
)

// OTP helpers

var otpSpace = big.NewInt(1000000)

// KeyPendingSignup is the Redis key holding the pending signup for an email
func KeyPendingSignup(email string) string {
	return "signup:pending:" + email
}

// KeyOTPAttempts counts wrong codes submitted against the pending signup for an email
func KeyOTPAttempts(email string) string {
	return "signup:attempts:" + email
}

// GenOTPCode generates a secure random 6-digit OTP code as a zero-padded string
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// OTPEqual compares two codes exactly, without normalization.
func OTPEqual(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// NormalizeEmail lowercases and trims an address so it can be used as a key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
