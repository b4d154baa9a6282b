//go:generate go tool mockgen -source=responder.go -destination=responder_mock_test.go -package=responder
package responder

import (
	"context"
	"errors"
	"testing"

	"github.com/DIMO-Network/messenger-maintenance-bot/internal/clients/graph"
	"github.com/DIMO-Network/messenger-maintenance-bot/internal/services/notifiedstore"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var contactButton = graph.Button{Type: graph.ButtonTypeWebURL, URL: "https://example.com/contact", Title: "Contact me"}

func testNotices() Notices {
	return Notices{
		Long:   "long notice",
		Short:  "short notice",
		Prompt: "reach us",
		Button: &contactButton,
	}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"A", "B", "C", "D"} {
		p, err := ParsePolicy(name)
		require.NoError(t, err)
		assert.Equal(t, Policy(name), p)
	}
	_, err := ParsePolicy("E")
	assert.Error(t, err)
	_, err = ParsePolicy("")
	assert.Error(t, err)
}

func TestResponder_Plan(t *testing.T) {
	t.Parallel()

	text := func(s string) graph.OutboundMessage {
		return graph.OutboundMessage{RecipientID: "U1", Text: s}
	}
	withButton := func(s string) graph.OutboundMessage {
		return graph.OutboundMessage{RecipientID: "U1", Text: s, Buttons: []graph.Button{contactButton}}
	}

	tests := []struct {
		name   string
		policy Policy
		first  []graph.OutboundMessage
		repeat []graph.OutboundMessage
	}{
		{
			name:   "text only",
			policy: PolicyTextOnly,
			first:  []graph.OutboundMessage{text("long notice")},
			repeat: []graph.OutboundMessage{text("short notice")},
		},
		{
			name:   "separate button",
			policy: PolicySeparateButton,
			first:  []graph.OutboundMessage{text("long notice"), withButton("reach us")},
			repeat: []graph.OutboundMessage{text("short notice"), withButton("reach us")},
		},
		{
			name:   "button on first contact",
			policy: PolicyFirstContactButton,
			first:  []graph.OutboundMessage{withButton("long notice")},
			repeat: []graph.OutboundMessage{text("short notice")},
		},
		{
			name:   "always short with button",
			policy: PolicyAlwaysShortButton,
			first:  []graph.OutboundMessage{withButton("short notice")},
			repeat: []graph.OutboundMessage{withButton("short notice")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(nil, nil, tt.policy, testNotices(), zerolog.Nop())
			assert.Equal(t, tt.first, r.Plan("U1", true))
			assert.Equal(t, tt.repeat, r.Plan("U1", false))
		})
	}
}

func TestResponder_PlanWithoutButton(t *testing.T) {
	t.Parallel()
	notices := testNotices()
	notices.Button = nil

	for _, policy := range []Policy{PolicyTextOnly, PolicySeparateButton, PolicyFirstContactButton, PolicyAlwaysShortButton} {
		r := New(nil, nil, policy, notices, zerolog.Nop())
		for _, first := range []bool{true, false} {
			msgs := r.Plan("U1", first)
			require.Len(t, msgs, 1, "policy %s", policy)
			assert.Empty(t, msgs[0].Buttons, "policy %s", policy)
		}
	}
}

func TestResponder_Respond(t *testing.T) {
	t.Parallel()

	t.Run("first contact gets the long notice then the short one", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := NewMockSender(ctrl)
		store := notifiedstore.NewMemoryStore()
		r := New(store, sender, PolicyTextOnly, testNotices(), zerolog.Nop())
		ctx := context.Background()

		gomock.InOrder(
			sender.EXPECT().Send(gomock.Any(), graph.OutboundMessage{RecipientID: "U1", Text: "long notice"}).Return(true),
			sender.EXPECT().Send(gomock.Any(), graph.OutboundMessage{RecipientID: "U1", Text: "short notice"}).Return(true),
		)

		res := r.Respond(ctx, "U1")
		assert.Equal(t, Result{SenderID: "U1", FirstContact: true, Attempted: 1, Succeeded: 1}, res)
		has, err := store.Has(ctx, "U1")
		require.NoError(t, err)
		assert.True(t, has)

		res = r.Respond(ctx, "U1")
		assert.Equal(t, Result{SenderID: "U1", FirstContact: false, Attempted: 1, Succeeded: 1}, res)
		has, err = store.Has(ctx, "U1")
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("failed send still records the sender", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := NewMockSender(ctrl)
		store := notifiedstore.NewMemoryStore()
		r := New(store, sender, PolicyFirstContactButton, testNotices(), zerolog.Nop())

		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(false)

		res := r.Respond(context.Background(), "U9")
		assert.True(t, res.FirstContact)
		assert.Equal(t, 1, res.Attempted)
		assert.Equal(t, 0, res.Succeeded)
		count, err := store.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("store failure falls back to the short notice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := NewMockSender(ctrl)
		store := NewMockStore(ctrl)
		r := New(store, sender, PolicyTextOnly, testNotices(), zerolog.Nop())

		store.EXPECT().MarkNotified(gomock.Any(), "U1").Return(false, errors.New("connection refused"))
		sender.EXPECT().Send(gomock.Any(), graph.OutboundMessage{RecipientID: "U1", Text: "short notice"}).Return(true)

		res := r.Respond(context.Background(), "U1")
		assert.False(t, res.FirstContact)
		assert.Equal(t, 1, res.Succeeded)
	})

	t.Run("separate button sends two messages", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := NewMockSender(ctrl)
		r := New(notifiedstore.NewMemoryStore(), sender, PolicySeparateButton, testNotices(), zerolog.Nop())

		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(true).Times(2)

		res := r.Respond(context.Background(), "U1")
		assert.Equal(t, 2, res.Attempted)
		assert.Equal(t, 2, res.Succeeded)
	})
}

func TestResponder_Announcement(t *testing.T) {
	t.Parallel()
	r := New(nil, nil, PolicyTextOnly, testNotices(), zerolog.Nop())
	assert.Equal(t, graph.OutboundMessage{RecipientID: "U5", Text: "long notice", Buttons: []graph.Button{contactButton}}, r.Announcement("U5"))

	notices := testNotices()
	notices.Button = nil
	r = New(nil, nil, PolicyTextOnly, notices, zerolog.Nop())
	assert.Equal(t, graph.OutboundMessage{RecipientID: "U5", Text: "long notice"}, r.Announcement("U5"))
}
