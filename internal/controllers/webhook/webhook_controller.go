package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"

	"github.com/DIMO-Network/messenger-maintenance-bot/internal/services/responder"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const (
	greeting          = "Hello world"
	verifyMismatch    = "Verification token mismatch"
	acknowledgement   = "ok"
	modeSubscribe     = "subscribe"
	queryHubMode      = "hub.mode"
	queryHubToken     = "hub.verify_token"
	queryHubChallenge = "hub.challenge"
)

// Responder answers one sender.
type Responder interface {
	Respond(ctx context.Context, senderID string) responder.Result
}

// WebhookController serves the Messenger webhook.
type WebhookController struct {
	verifyToken string
	responder   Responder
}

// NewWebhookController creates a new WebhookController.
func NewWebhookController(verifyToken string, responder Responder) *WebhookController {
	return &WebhookController{
		verifyToken: verifyToken,
		responder:   responder,
	}
}

// Verify godoc
// @Summary      Verify the Messenger webhook
// @Description  Echoes hub.challenge when hub.mode is subscribe and hub.verify_token matches. Any other GET is greeted.
// @Tags         Webhook
// @Produce      plain
// @Param        hub.mode          query     string  false  "Subscription mode"
// @Param        hub.verify_token  query     string  false  "Verify token configured on the platform"
// @Param        hub.challenge     query     string  false  "Challenge to echo"
// @Success      200  {string}  string  "Challenge or greeting"
// @Failure      403  {string}  string  "Verification token mismatch"
// @Router       / [get]
func (w *WebhookController) Verify(c *fiber.Ctx) error {
	mode := c.Query(queryHubMode)
	challenge := c.Query(queryHubChallenge)
	if mode != modeSubscribe || challenge == "" {
		return c.SendString(greeting)
	}
	token := c.Query(queryHubToken)
	if subtle.ConstantTimeCompare([]byte(token), []byte(w.verifyToken)) != 1 {
		zerolog.Ctx(c.UserContext()).Warn().Msg("Webhook verification token mismatch")
		return c.Status(fiber.StatusForbidden).SendString(verifyMismatch)
	}
	zerolog.Ctx(c.UserContext()).Info().Msg("Webhook verified")
	return c.SendString(challenge)
}

// Receive godoc
// @Summary      Receive Messenger events
// @Description  Answers every user message in the batch with the maintenance notice. Messenger retries the whole batch on a non-200, so the response is ok no matter how the individual sends went.
// @Tags         Webhook
// @Accept       json
// @Produce      plain
// @Param        X-Hub-Signature-256  header    string    false  "sha256=<hex HMAC of the body>, checked when APP_SECRET is set"
// @Param        request              body      Envelope  true   "Webhook batch"
// @Success      200  {string}  string  "ok"
// @Failure      401  "Invalid signature"
// @Router       / [post]
func (w *WebhookController) Receive(c *fiber.Ctx) error {
	logger := zerolog.Ctx(c.UserContext())

	var envelope Envelope
	if err := json.Unmarshal(c.Body(), &envelope); err != nil {
		logger.Warn().Err(err).Msg("Ignoring undecodable webhook payload")
		return c.SendString(acknowledgement)
	}
	if envelope.Object != ObjectPage {
		logger.Debug().Str("object", envelope.Object).Msg("Ignoring non-page webhook")
		return c.SendString(acknowledgement)
	}

	for _, entry := range envelope.Entry {
		for _, event := range entry.Messaging {
			if !isUserMessage(event) {
				continue
			}
			w.responder.Respond(c.UserContext(), event.Sender.ID)
		}
	}
	return c.SendString(acknowledgement)
}

// isUserMessage filters out receipts, postbacks and the page's own echoes.
func isUserMessage(event MessagingEvent) bool {
	return event.Message != nil && !event.Message.IsEcho && event.Sender.ID != ""
}
