// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helper "sdc_backend/internals/helpers"
)

// Options for AuthJWT. Secret falls back to configs.JWTSecret at the call site.
type Options struct {
	Secret string
	// allowed clock skew on exp
	Leeway time.Duration
}

// AuthJWT verifies an HS256 bearer token (header or access_token cookie) and
// stores user id and role in Locals. Tokens are issued elsewhere.
func AuthJWT(opts Options) fiber.Handler {
	if opts.Leeway == 0 {
		opts.Leeway = 30 * time.Second
	}
	parser := jwt.Parser{
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		SkipClaimsValidation: true,
	}

	return func(c *fiber.Ctx) error {
		if opts.Secret == "" {
			log.Println("[ERROR] JWT secret is empty")
			return helper.JsonError(c, fiber.StatusInternalServerError, "missing jwt secret")
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		claims := jwt.MapClaims{}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(opts.Secret), nil
		}); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "unauthorized - token parse error")
		}
		if err := validateTokenExpiry(claims, opts.Leeway); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "unauthorized - token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "unauthorized - invalid or missing user id")
		}

		c.Locals(helper.LocUserID, userID.String())
		storeBasicClaimsToLocals(c, claims)
		helper.SetRawAccessToken(c, tokenString)
		return c.Next()
	}
}
