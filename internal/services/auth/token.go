package auth

import (
	"time"

	"tasknest/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// IssueToken signs an HS256 bearer token carrying the user id. The token
// expires after cfg.TokenTTLDays; there is no refresh path, clients simply
// log in again.
func IssueToken(cfg config.Config, userID bson.ObjectID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.Hex(),
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(cfg.TokenTTLDays) * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", ErrGenToken
	}
	return signed, nil
}

// VerifyToken checks signature and expiry and returns the user id claim.
// It does not consult the store; a token can verify for a user that no
// longer exists.
func VerifyToken(cfg config.Config, raw string) (bson.ObjectID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return bson.ObjectID{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return bson.ObjectID{}, ErrInvalidToken
	}

	idHex, ok := claims["user_id"].(string)
	if !ok || idHex == "" {
		return bson.ObjectID{}, ErrTokenMissingUserID
	}

	id, err := bson.ObjectIDFromHex(idHex)
	if err != nil {
		return bson.ObjectID{}, ErrInvalidToken
	}
	return id, nil
}
