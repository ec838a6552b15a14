// Package client talks to the storefront REST API.
//
// # Overview
//
// The package provides:
//  1. The API contract split by area (AuthAPI, CatalogAPI, CartAPI) and the
//     aggregate Client interface.
//  2. HTTPClient, the net/http implementation. It keeps one cookie jar for
//     every call, so the refresh cookie set by login travels with
//     /auth/refresh, and attaches "Authorization: Bearer" from a token source
//     when one is set.
//  3. PersistentJar, a cookie jar that mirrors the API cookies into the local
//     key/value store so a silent refresh works after the CLI restarts.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx answers are *APIError
// values whose Message is user-facing and which unwrap to ErrUnauthorized,
// ErrNotFound, ErrEmailExists or ErrSessionExpired where that applies.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client
