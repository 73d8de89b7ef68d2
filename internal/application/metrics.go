package application

import "expvar"

// Counters published on /api/debug/vars.
var (
	signupsTotal     = expvar.NewInt("signups")
	otpVerifiedTotal = expvar.NewInt("otp_verified")
	loginsTotal      = expvar.NewInt("logins")
	chatRequests     = expvar.NewInt("chat_requests")
	chatFailures     = expvar.NewInt("chat_failures")
)
