// Package models defines the client-side data models of the storefront CLI:
// the API payloads (users, products, posts, server cart) and the lines of
// the local cart.
package models
