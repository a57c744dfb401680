package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tasknest/cmd/server/handlers/httperr"
	"tasknest/internal/config"
	"tasknest/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// TestJWTSecret is long enough to satisfy config validation.
const TestJWTSecret = "test-secret-with-32-plus-characters-okay"

// CreateTestApp creates a basic Fiber app for testing with common configuration
func CreateTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{LogLevel: "debug", LogFormat: "text"}
	_, err := logger.Init(cfg)
	require.NoError(t, err)

	return fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
	})
}

// CreateTestValidator creates a request validator for handler tests
func CreateTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	return validator.New()
}

// TestConfig returns a config suitable for token issue/verify in tests.
func TestConfig() config.Config {
	return config.Config{
		JWTSecret:    TestJWTSecret,
		TokenTTLDays: 7,
		BcryptCost:   10,
	}
}

// CreateTestJWT creates a signed bearer token for testing purposes
func CreateTestJWT(userID string, secret []byte, expiry time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(expiry).Unix(),
	})
	return token.SignedString(secret)
}

// CreateJSONRequest builds an httptest request with a JSON body
func CreateJSONRequest(method, url string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// CreateAuthenticatedRequest builds a JSON request carrying a bearer token
func CreateAuthenticatedRequest(method, url string, body any, token string) *http.Request {
	req := CreateJSONRequest(method, url, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// DecodeJSON decodes a response body into a generic map
func DecodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	return got
}
