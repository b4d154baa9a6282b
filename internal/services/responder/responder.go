package responder

import (
	"context"
	"fmt"

	"github.com/DIMO-Network/messenger-maintenance-bot/internal/clients/graph"
	"github.com/rs/zerolog"
)

// Policy decides which notice goes to a sender and where the contact button goes.
type Policy string

const (
	// PolicyTextOnly sends the long text on first contact and the short text afterwards.
	PolicyTextOnly Policy = "A"
	// PolicySeparateButton follows every notice with the button as its own message.
	PolicySeparateButton Policy = "B"
	// PolicyFirstContactButton bundles the button with the long text only.
	PolicyFirstContactButton Policy = "C"
	// PolicyAlwaysShortButton sends the short text with the button to everyone.
	PolicyAlwaysShortButton Policy = "D"
)

// ParsePolicy validates a policy name.
func ParsePolicy(name string) (Policy, error) {
	switch p := Policy(name); p {
	case PolicyTextOnly, PolicySeparateButton, PolicyFirstContactButton, PolicyAlwaysShortButton:
		return p, nil
	}
	return "", fmt.Errorf("unknown reply policy %q", name)
}

// Sender delivers one message and reports success.
type Sender interface {
	Send(ctx context.Context, msg graph.OutboundMessage) bool
}

// Store is the subset of the notified-sender table the responder needs.
type Store interface {
	MarkNotified(ctx context.Context, senderID string) (bool, error)
}

// Notices holds the canned texts and the optional contact button.
type Notices struct {
	Long   string
	Short  string
	Prompt string
	Button *graph.Button
}

// Result describes what was sent to one sender.
type Result struct {
	SenderID     string
	FirstContact bool
	Attempted    int
	Succeeded    int
}

// Responder answers inbound messages with the maintenance notice.
type Responder struct {
	store   Store
	sender  Sender
	policy  Policy
	notices Notices
	logger  zerolog.Logger
}

// New creates a Responder.
func New(store Store, sender Sender, policy Policy, notices Notices, logger zerolog.Logger) *Responder {
	return &Responder{
		store:   store,
		sender:  sender,
		policy:  policy,
		notices: notices,
		logger:  logger,
	}
}

// Policy returns the configured policy.
func (r *Responder) Policy() Policy {
	return r.policy
}

// Respond sends the notice due to senderID and records it as notified.
// The sender is claimed before sending so that two messages racing from the
// same user produce one long notice. If the store fails the short notice is
// sent.
func (r *Responder) Respond(ctx context.Context, senderID string) Result {
	logger := r.logger.With().Str("sender_id", senderID).Logger()
	first, err := r.store.MarkNotified(ctx, senderID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to record notified sender, sending short notice")
		first = false
	}

	res := Result{SenderID: senderID, FirstContact: first}
	for _, msg := range r.Plan(senderID, first) {
		res.Attempted++
		if r.sender.Send(ctx, msg) {
			res.Succeeded++
		}
	}
	logger.Info().
		Bool("first_contact", first).
		Int("attempted", res.Attempted).
		Int("succeeded", res.Succeeded).
		Msg("Maintenance notice dispatched")
	return res
}

// Plan builds the messages for a sender under the configured policy.
func (r *Responder) Plan(senderID string, firstContact bool) []graph.OutboundMessage {
	text := r.notices.Short
	if firstContact {
		text = r.notices.Long
	}
	button := r.notices.Button

	switch r.policy {
	case PolicyTextOnly:
		return []graph.OutboundMessage{textMessage(senderID, text)}
	case PolicySeparateButton:
		msgs := []graph.OutboundMessage{textMessage(senderID, text)}
		if button != nil {
			msgs = append(msgs, buttonMessage(senderID, r.notices.Prompt, *button))
		}
		return msgs
	case PolicyFirstContactButton:
		if firstContact && button != nil {
			return []graph.OutboundMessage{buttonMessage(senderID, text, *button)}
		}
		return []graph.OutboundMessage{textMessage(senderID, text)}
	case PolicyAlwaysShortButton:
		if button != nil {
			return []graph.OutboundMessage{buttonMessage(senderID, r.notices.Short, *button)}
		}
		return []graph.OutboundMessage{textMessage(senderID, r.notices.Short)}
	}
	return nil
}

// Announcement is the long notice with the button attached, as broadcast to
// every known conversation.
func (r *Responder) Announcement(recipientID string) graph.OutboundMessage {
	if r.notices.Button == nil {
		return textMessage(recipientID, r.notices.Long)
	}
	return buttonMessage(recipientID, r.notices.Long, *r.notices.Button)
}

func textMessage(recipientID, text string) graph.OutboundMessage {
	return graph.OutboundMessage{RecipientID: recipientID, Text: text}
}

func buttonMessage(recipientID, text string, button graph.Button) graph.OutboundMessage {
	return graph.OutboundMessage{RecipientID: recipientID, Text: text, Buttons: []graph.Button{button}}
}
