package broadcaster

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/DIMO-Network/messenger-maintenance-bot/internal/clients/graph"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var (
	// ErrNotConfigured is returned when no access token is available.
	ErrNotConfigured = errors.New("page access token is not configured")
	// ErrNoParticipants is returned when no conversation participant was found.
	ErrNoParticipants = errors.New("no users found in page conversations")
)

// Lister finds the users that have a conversation with the page.
type Lister interface {
	HasAccessToken() bool
	ListParticipants(ctx context.Context, pageID string, limit, maxPages int) ([]string, error)
}

// Sender delivers one message and reports success.
type Sender interface {
	Send(ctx context.Context, msg graph.OutboundMessage) bool
}

// Store records recipients so that their next message gets the short notice.
type Store interface {
	MarkNotified(ctx context.Context, senderID string) (bool, error)
}

// Config bounds a broadcast run.
type Config struct {
	PageID      string
	PageLimit   int
	MaxPages    int
	Concurrency int
	RatePerSec  float64
}

// Summary reports the outcome of one broadcast.
type Summary struct {
	ID        string
	Attempted int
	Succeeded int
	Failed    int
}

// Broadcaster pushes the announcement to every known conversation.
type Broadcaster struct {
	lister   Lister
	sender   Sender
	store    Store
	announce func(recipientID string) graph.OutboundMessage
	cfg      Config
	logger   zerolog.Logger
}

// New creates a Broadcaster. announce builds the message for one recipient.
func New(lister Lister, sender Sender, store Store, announce func(string) graph.OutboundMessage, cfg Config, logger zerolog.Logger) *Broadcaster {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Broadcaster{
		lister:   lister,
		sender:   sender,
		store:    store,
		announce: announce,
		cfg:      cfg,
		logger:   logger,
	}
}

// Broadcast sends the announcement once to each unique participant.
// Individual send failures are counted, not returned.
func (b *Broadcaster) Broadcast(ctx context.Context) (Summary, error) {
	summary := Summary{ID: uuid.New().String()}
	logger := b.logger.With().Str("broadcast_id", summary.ID).Logger()

	if !b.lister.HasAccessToken() {
		return summary, ErrNotConfigured
	}
	participants, err := b.lister.ListParticipants(ctx, b.cfg.PageID, b.cfg.PageLimit, b.cfg.MaxPages)
	if err != nil {
		return summary, fmt.Errorf("failed to list participants: %w", err)
	}
	recipients := unique(participants)
	if len(recipients) == 0 {
		return summary, ErrNoParticipants
	}
	logger.Info().Int("recipients", len(recipients)).Msg("Starting broadcast")

	limit := rate.Inf
	if b.cfg.RatePerSec > 0 {
		limit = rate.Limit(b.cfg.RatePerSec)
	}
	limiter := rate.NewLimiter(limit, 1)

	var succeeded, failed atomic.Int64
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(b.cfg.Concurrency)
	for _, id := range recipients {
		group.Go(func() error {
			if err := limiter.Wait(groupCtx); err != nil {
				return fmt.Errorf("broadcast interrupted: %w", err)
			}
			if !b.sender.Send(groupCtx, b.announce(id)) {
				failed.Add(1)
				return nil
			}
			succeeded.Add(1)
			if _, err := b.store.MarkNotified(groupCtx, id); err != nil {
				logger.Error().Err(err).Str("recipient_id", id).Msg("Failed to record broadcast recipient")
			}
			return nil
		})
	}
	err = group.Wait()

	summary.Succeeded = int(succeeded.Load())
	summary.Failed = int(failed.Load())
	summary.Attempted = summary.Succeeded + summary.Failed
	logger.Info().
		Int("attempted", summary.Attempted).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Msg("Broadcast finished")
	return summary, err
}

// unique de-duplicates ids keeping first-seen order.
func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
