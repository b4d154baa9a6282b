package graph

// ButtonTypeWebURL is the only button type the bot attaches.
const ButtonTypeWebURL = "web_url"

// Button is a single tappable action rendered by a button template.
type Button struct {
	Type  string `json:"type"`
	URL   string `json:"url,omitempty"`
	Title string `json:"title"`
}

// OutboundMessage is one message to deliver to a Messenger user.
type OutboundMessage struct {
	RecipientID string
	Text        string
	Buttons     []Button
}

type sendRequest struct {
	Recipient recipient      `json:"recipient"`
	Message   messagePayload `json:"message"`
}

type recipient struct {
	ID string `json:"id"`
}

type messagePayload struct {
	Text       string      `json:"text,omitempty"`
	Attachment *attachment `json:"attachment,omitempty"`
}

type attachment struct {
	Type    string          `json:"type"`
	Payload templatePayload `json:"payload"`
}

type templatePayload struct {
	TemplateType string   `json:"template_type"`
	Text         string   `json:"text"`
	Buttons      []Button `json:"buttons"`
}

type conversationsResponse struct {
	Data   []conversation `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

type conversation struct {
	ID           string `json:"id"`
	Participants struct {
		Data []participant `json:"data"`
	} `json:"participants"`
}

type participant struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type meResponse struct {
	ID string `json:"id"`
}
