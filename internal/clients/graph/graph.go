package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/rs/zerolog"
)

const (
	// GraphFailureCode is the code returned when the Graph API call failed.
	GraphFailureCode = -1

	defaultTimeout = 10 * time.Second
	// Maximum response body size to read for error logging
	maxResponseBodySize = 1024
)

// ErrMissingAccessToken is returned when no page access token is configured.
var ErrMissingAccessToken = errors.New("page access token is not configured")

// Client for the Messenger Graph API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      zerolog.Logger
}

// New creates a new Client. A nil httpClient gets a client with the given timeout.
func New(baseURL, accessToken string, timeout time.Duration, httpClient *http.Client, logger zerolog.Logger) (*Client, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graph API URL: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:     strings.TrimRight(parsedURL.String(), "/"),
		accessToken: accessToken,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// HasAccessToken reports whether outbound calls can be authenticated.
func (c *Client) HasAccessToken() bool {
	return c.accessToken != ""
}

// Send delivers msg and reports whether the platform accepted it.
// Failures are logged, never returned.
func (c *Client) Send(ctx context.Context, msg OutboundMessage) bool {
	logger := c.logger.With().Str("recipient_id", msg.RecipientID).Logger()
	if err := c.SendMessage(ctx, msg); err != nil {
		logger.Error().Err(err).Msg("Failed to send message")
		return false
	}
	logger.Info().Bool("buttons", len(msg.Buttons) > 0).Msg("Message sent")
	return true
}

// SendMessage posts msg to the send API. A message with buttons is sent as a
// button template, otherwise as plain text.
func (c *Client) SendMessage(ctx context.Context, msg OutboundMessage) error {
	if !c.HasAccessToken() {
		return ErrMissingAccessToken
	}
	body, err := json.Marshal(buildSendRequest(msg))
	if err != nil {
		return fmt.Errorf("failed to marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/me/messages", nil), bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return richerrors.Error{
			Code: GraphFailureCode,
			Err:  fmt.Errorf("failed to POST message: %w", redactToken(err, c.accessToken)),
		}
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
		return richerrors.Error{
			Code: GraphFailureCode,
			Err:  fmt.Errorf("send API returned status code %d: %s", resp.StatusCode, string(respBody)),
		}
	}
	return nil
}

// PageID asks the platform which page the access token belongs to.
func (c *Client) PageID(ctx context.Context) (string, error) {
	if !c.HasAccessToken() {
		return "", ErrMissingAccessToken
	}
	query := url.Values{}
	query.Set("fields", "id")
	var resp meResponse
	if err := c.getJSON(ctx, c.endpoint("/me", query), &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errors.New("page id missing from /me response")
	}
	return resp.ID, nil
}

// ListParticipants walks the page's conversations and returns every participant
// id except the page itself. An empty pageID is resolved with PageID.
// Duplicates are kept; callers de-duplicate.
func (c *Client) ListParticipants(ctx context.Context, pageID string, limit, maxPages int) ([]string, error) {
	if !c.HasAccessToken() {
		return nil, ErrMissingAccessToken
	}
	if pageID == "" {
		id, err := c.PageID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve page id: %w", err)
		}
		pageID = id
	}
	query := url.Values{}
	query.Set("fields", "participants")
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	next := c.endpoint("/me/conversations", query)

	var ids []string
	for page := 0; next != "" && (maxPages <= 0 || page < maxPages); page++ {
		var resp conversationsResponse
		if err := c.getJSON(ctx, next, &resp); err != nil {
			return nil, err
		}
		for _, conv := range resp.Data {
			for _, p := range conv.Participants.Data {
				if p.ID == "" || p.ID == pageID {
					continue
				}
				ids = append(ids, p.ID)
			}
		}
		next = resp.Paging.Next
	}
	return ids, nil
}

func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create graph request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query graph API: %w", redactToken(err, c.accessToken))
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
		return richerrors.Error{
			Code:        http.StatusInternalServerError,
			ExternalMsg: "Failed to list conversations",
			Err:         fmt.Errorf("graph API returned status code %d: %s", resp.StatusCode, string(respBody)),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode graph response: %w", err)
	}
	return nil
}

// endpoint builds an authenticated Graph API URL. The access token travels as
// a query credential.
func (c *Client) endpoint(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("access_token", c.accessToken)
	return c.baseURL + path + "?" + query.Encode()
}

func buildSendRequest(msg OutboundMessage) sendRequest {
	req := sendRequest{Recipient: recipient{ID: msg.RecipientID}}
	if len(msg.Buttons) == 0 {
		req.Message.Text = msg.Text
		return req
	}
	req.Message.Attachment = &attachment{
		Type: "template",
		Payload: templatePayload{
			TemplateType: "button",
			Text:         msg.Text,
			Buttons:      msg.Buttons,
		},
	}
	return req
}

// redactToken keeps the access token out of transport errors, which embed the request URL.
func redactToken(err error, token string) error {
	if token == "" {
		return err
	}
	msg := err.Error()
	redacted := strings.ReplaceAll(strings.ReplaceAll(msg, url.QueryEscape(token), "REDACTED"), token, "REDACTED")
	if redacted == msg {
		return err
	}
	return errors.New(redacted)
}
