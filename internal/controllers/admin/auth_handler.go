package admin

import (
	"crypto/subtle"
	"strings"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/gofiber/fiber/v2"
)

// TokenHeader carries the admin token.
const TokenHeader = "X-Admin-Token"

// TokenMiddleware only lets requests through that present adminToken, either in
// X-Admin-Token or as a Bearer Authorization header.
func TokenMiddleware(adminToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(TokenHeader)
		if token == "" {
			if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if adminToken == "" || token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			return richerrors.Error{
				ExternalMsg: "Admin token missing or invalid",
				Code:        fiber.StatusUnauthorized,
			}
		}
		return c.Next()
	}
}
