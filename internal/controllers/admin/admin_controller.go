package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DIMO-Network/messenger-maintenance-bot/internal/services/broadcaster"
	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// redactedPrefixLen is how much of a secret the status endpoint reveals.
const redactedPrefixLen = 10

// Store is the notified-sender table as seen by operators.
type Store interface {
	Count(ctx context.Context) (int, error)
	IDs(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) (int, error)
}

// Broadcaster pushes the announcement to every known conversation.
type Broadcaster interface {
	Broadcast(ctx context.Context) (broadcaster.Summary, error)
}

// Info is the static part of the status report.
type Info struct {
	ReplyPolicy       string
	MaintenanceEndsAt time.Time
	PageAccessToken   string
	VerifyToken       string
}

// AdminController serves the operator endpoints.
type AdminController struct {
	store       Store
	broadcaster Broadcaster
	info        Info
	now         func() time.Time
}

// NewAdminController creates a new AdminController.
func NewAdminController(store Store, broadcaster Broadcaster, info Info) *AdminController {
	return &AdminController{
		store:       store,
		broadcaster: broadcaster,
		info:        info,
		now:         time.Now,
	}
}

// Status godoc
// @Summary      Report responder status
// @Description  Reports the maintenance window, the reply policy and how many users were notified. Secrets are redacted.
// @Tags         Admin
// @Produce      json
// @Param        include_ids  query     bool  false  "List the notified sender ids"
// @Success      200  {object}  StatusResponse
// @Failure      401  "Admin token missing or invalid"
// @Failure      500  "Internal server error"
// @Security     AdminToken
// @Router       /status [get]
func (a *AdminController) Status(c *fiber.Ctx) error {
	count, err := a.store.Count(c.UserContext())
	if err != nil {
		return richerrors.Error{
			ExternalMsg: "Failed to read notified users",
			Err:         err,
			Code:        fiber.StatusInternalServerError,
		}
	}
	resp := StatusResponse{
		Status:            "ok",
		MaintenanceMode:   a.now().Before(a.info.MaintenanceEndsAt),
		MaintenanceEndsAt: a.info.MaintenanceEndsAt,
		ReplyPolicy:       a.info.ReplyPolicy,
		NotifiedUsers:     count,
		PageAccessToken:   redact(a.info.PageAccessToken),
		VerifyToken:       redact(a.info.VerifyToken),
	}
	if c.QueryBool("include_ids") {
		ids, err := a.store.IDs(c.UserContext())
		if err != nil {
			return richerrors.Error{
				ExternalMsg: "Failed to list notified users",
				Err:         err,
				Code:        fiber.StatusInternalServerError,
			}
		}
		resp.NotifiedIDs = ids
	}
	return c.JSON(resp)
}

// Reset godoc
// @Summary      Reset notified users
// @Description  Forgets every notified user so the next message from each gets the long notice again.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  ResetResponse
// @Failure      401  "Admin token missing or invalid"
// @Failure      500  "Internal server error"
// @Security     AdminToken
// @Router       /reset [get]
// @Router       /reset [post]
func (a *AdminController) Reset(c *fiber.Ctx) error {
	cleared, err := a.store.Clear(c.UserContext())
	if err != nil {
		return richerrors.Error{
			ExternalMsg: "Failed to reset notified users",
			Err:         err,
			Code:        fiber.StatusInternalServerError,
		}
	}
	zerolog.Ctx(c.UserContext()).Info().Int("cleared", cleared).Msg("Notified users reset")
	return c.JSON(ResetResponse{
		Success: true,
		Message: fmt.Sprintf("Cleared %d notified users", cleared),
		Cleared: cleared,
	})
}

// Broadcast godoc
// @Summary      Broadcast the maintenance notice
// @Description  Sends the long notice to every user with a conversation and marks the delivered ones as notified.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  BroadcastResponse
// @Failure      401  "Admin token missing or invalid"
// @Failure      500  "Access token missing or conversations could not be listed"
// @Security     AdminToken
// @Router       /broadcast [get]
func (a *AdminController) Broadcast(c *fiber.Ctx) error {
	summary, err := a.broadcaster.Broadcast(c.UserContext())
	switch {
	case errors.Is(err, broadcaster.ErrNotConfigured):
		return richerrors.Error{
			ExternalMsg: "PAGE_ACCESS_TOKEN is not configured",
			Err:         err,
			Code:        fiber.StatusInternalServerError,
		}
	case errors.Is(err, broadcaster.ErrNoParticipants):
		return c.JSON(BroadcastResponse{
			Success:     false,
			Message:     "No users found in page conversations",
			BroadcastID: summary.ID,
		})
	case err != nil && summary.Attempted == 0:
		if _, ok := richerrors.AsRichError(err); ok {
			return err
		}
		return richerrors.Error{
			ExternalMsg: "Broadcast failed",
			Err:         err,
			Code:        fiber.StatusInternalServerError,
		}
	case err != nil:
		zerolog.Ctx(c.UserContext()).Warn().Err(err).Msg("Broadcast interrupted")
	}
	return c.JSON(BroadcastResponse{
		Success:     summary.Failed == 0 && err == nil,
		Message:     fmt.Sprintf("Maintenance notice sent to %d of %d users", summary.Succeeded, summary.Attempted),
		BroadcastID: summary.ID,
		Attempted:   summary.Attempted,
		Succeeded:   summary.Succeeded,
		Failed:      summary.Failed,
	})
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= redactedPrefixLen {
		return "..."
	}
	return secret[:redactedPrefixLen] + "..."
}
