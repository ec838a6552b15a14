package session

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// userFromToken reads the user_id and email claims from the payload
// segment of an access token. The header and signature are not looked at.
// Missing claims stay zero, and so does the whole user when the payload
// cannot be decoded.
func userFromToken(token string) models.User {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return models.User{}
	}
	payload, err := jwt.NewParser(jwt.WithPaddingAllowed()).DecodeSegment(parts[1])
	if err != nil {
		return models.User{}
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return models.User{}
	}

	var u models.User
	switch v := claims["user_id"].(type) {
	case float64:
		if v == math.Trunc(v) && math.Abs(v) <= math.MaxInt32 {
			u.ID = int(v)
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			u.ID = int(n)
		}
	}
	if email, ok := claims["email"].(string); ok {
		u.Email = email
	}
	return u
}
