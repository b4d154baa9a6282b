package webhook

// Envelope is the batch of events Messenger posts to the webhook.
type Envelope struct {
	// Object is "page" for Messenger events.
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry groups the events of one page.
type Entry struct {
	// ID is the page id.
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEvent `json:"messaging"`
}

// MessagingEvent is a single event. Only events with a Message are answered.
type MessagingEvent struct {
	Sender    Participant `json:"sender"`
	Recipient Participant `json:"recipient"`
	Timestamp int64       `json:"timestamp"`
	Message   *Message    `json:"message,omitempty"`
}

// Participant is a page-scoped user or page id.
type Participant struct {
	ID string `json:"id"`
}

// Message is the user-authored content of an event.
type Message struct {
	MID    string `json:"mid"`
	Text   string `json:"text"`
	IsEcho bool   `json:"is_echo,omitempty"`
}

// ObjectPage is the only envelope object the bot handles.
const ObjectPage = "page"
