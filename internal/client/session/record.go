package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// Store is the slice of the client key/value store the session needs.
// Get returns (nil, nil) for a missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// record is the persisted form of a session.
type record struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

// loadRecord returns the persisted session, or nil when there is none.
// Unreadable, malformed or incomplete records count as none; the error is
// only reported for the caller to log.
func loadRecord(ctx context.Context, s Store) (*record, error) {
	raw, err := s.Get(ctx, common.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("read session record: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("parse session record: %w", err)
	}
	if r.AccessToken == "" || r.User == nil {
		return nil, nil
	}
	return &r, nil
}

func saveRecord(ctx context.Context, s Store, token string, user models.User) error {
	b, err := json.Marshal(record{AccessToken: token, User: &user})
	if err != nil {
		return err
	}
	if err := s.Set(ctx, common.SessionKey, b); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	return nil
}

func clearRecord(ctx context.Context, s Store) error {
	if err := s.Delete(ctx, common.SessionKey); err != nil {
		return fmt.Errorf("delete session record: %w", err)
	}
	return nil
}
