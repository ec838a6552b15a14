// Package session owns the authentication state of the storefront client.
//
// A Manager is seeded from the record persisted under common.SessionKey,
// then silently refreshed against the API in the background. Until the
// refresh settles the state is tentative; Done/Wait expose the moment it
// becomes final. Login and Logout replace the state wholesale and keep the
// persisted record in step with it.
package session
