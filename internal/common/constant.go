// Package common contains shared constants and sentinel errors used across
// the storefront client packages.
package common

// SessionKey is the key/value store key holding the persisted session record.
const SessionKey = "auth_session"

// RequestIDHeaderName carries the per-request correlation id on outbound
// API calls.
const RequestIDHeaderName = "X-Request-ID"

// LoginPath is the location the route guard redirects unauthenticated
// navigation to.
const LoginPath = "/login"
