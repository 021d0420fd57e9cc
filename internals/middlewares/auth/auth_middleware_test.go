package auth

import (
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "sdc_backend/internals/helpers"
)

const testSecret = "test-secret"

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func newApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Use(AuthJWT(Options{Secret: testSecret}), OnlyRoles("", roles...))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(helper.LocUserID).(string) + "|" + helper.GetUserRole(c))
	})
	return app
}

func do(t *testing.T, app *fiber.App, header, cookie string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	if cookie != "" {
		req.Header.Set("Cookie", "access_token="+cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAuthJWT(t *testing.T) {
	app := newApp("ho", "admin")
	id := uuid.NewString()
	valid := sign(t, testSecret, jwt.MapClaims{"id": id, "role": "HO", "exp": time.Now().Add(time.Hour).Unix()})

	cases := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"bearer header", "Bearer " + valid, "", fiber.StatusOK},
		{"lowercase scheme", "bearer  " + valid, "", fiber.StatusOK},
		{"cookie", "", valid, fiber.StatusOK},
		{"no token", "", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, "", fiber.StatusUnauthorized},
		{"bad signature", "Bearer " + sign(t, "other", jwt.MapClaims{"id": id, "role": "ho", "exp": time.Now().Add(time.Hour).Unix()}), "", fiber.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, testSecret, jwt.MapClaims{"id": id, "role": "ho", "exp": time.Now().Add(-time.Hour).Unix()}), "", fiber.StatusUnauthorized},
		{"within leeway", "Bearer " + sign(t, testSecret, jwt.MapClaims{"id": id, "role": "ho", "exp": time.Now().Add(-10 * time.Second).Unix()}), "", fiber.StatusOK},
		{"no exp", "Bearer " + sign(t, testSecret, jwt.MapClaims{"id": id, "role": "ho"}), "", fiber.StatusUnauthorized},
		{"sub claim", "Bearer " + sign(t, testSecret, jwt.MapClaims{"sub": id, "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}), "", fiber.StatusOK},
		{"bad user id", "Bearer " + sign(t, testSecret, jwt.MapClaims{"id": "abc", "role": "ho", "exp": time.Now().Add(time.Hour).Unix()}), "", fiber.StatusUnauthorized},
		{"no role", "Bearer " + sign(t, testSecret, jwt.MapClaims{"id": id, "exp": time.Now().Add(time.Hour).Unix()}), "", fiber.StatusUnauthorized},
		{"role not allowed", "Bearer " + sign(t, testSecret, jwt.MapClaims{"id": id, "role": "viewer", "exp": time.Now().Add(time.Hour).Unix()}), "", fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, do(t, app, tc.header, tc.cookie))
		})
	}
}

func TestAuthJWT_MissingSecret(t *testing.T) {
	app := fiber.New()
	app.Use(AuthJWT(Options{}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	assert.Equal(t, fiber.StatusInternalServerError, do(t, app, "Bearer x", ""))
}

func TestValidateTokenExpiry(t *testing.T) {
	future := time.Now().Add(time.Minute).Unix()

	assert.NoError(t, validateTokenExpiry(jwt.MapClaims{"exp": float64(future)}, 0))
	assert.NoError(t, validateTokenExpiry(jwt.MapClaims{"exp": " " + strconv.FormatInt(future, 10) + " "}, 0))
	assert.Error(t, validateTokenExpiry(jwt.MapClaims{"exp": float64(time.Now().Add(-time.Minute).Unix())}, 0))
	assert.Error(t, validateTokenExpiry(jwt.MapClaims{"exp": "soon"}, 0))
	assert.Error(t, validateTokenExpiry(jwt.MapClaims{"exp": true}, 0))
}
