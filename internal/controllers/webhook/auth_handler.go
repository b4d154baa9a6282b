package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/gofiber/fiber/v2"
)

// SignatureHeader carries the HMAC-SHA256 of the request body keyed by the app secret.
const SignatureHeader = "X-Hub-Signature-256"

const signaturePrefix = "sha256="

// SignatureMiddleware rejects webhook posts whose X-Hub-Signature-256 does not
// match the body. An empty appSecret disables the check.
func SignatureMiddleware(appSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if appSecret == "" {
			return c.Next()
		}
		if !ValidSignature(c.Body(), c.Get(SignatureHeader), appSecret) {
			return richerrors.Error{
				ExternalMsg: "Invalid signature",
				Code:        fiber.StatusUnauthorized,
			}
		}
		return c.Next()
	}
}

// ValidSignature checks a "sha256=<hex>" signature against body.
func ValidSignature(body []byte, signature, appSecret string) bool {
	if !strings.HasPrefix(signature, signaturePrefix) {
		return false
	}
	sig, err := hex.DecodeString(strings.TrimPrefix(signature, signaturePrefix))
	if err != nil {
		return false
	}
	return hmac.Equal(sig, Sign(body, appSecret))
}

// Sign computes the raw HMAC-SHA256 of body.
func Sign(body []byte, appSecret string) []byte {
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	return mac.Sum(nil)
}
