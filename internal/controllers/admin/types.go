package admin

import "time"

// StatusResponse describes the running responder.
type StatusResponse struct {
	// Status is always "ok" when the service answers.
	Status string `json:"status"`
	// MaintenanceMode is true while the notice is being served.
	MaintenanceMode bool `json:"maintenance_mode"`
	// MaintenanceEndsAt is the announced end of the maintenance window.
	MaintenanceEndsAt time.Time `json:"maintenance_ends_at"`
	// ReplyPolicy is the configured button policy (A to D).
	ReplyPolicy string `json:"reply_policy"`
	// NotifiedUsers counts senders that already got a reply.
	NotifiedUsers int `json:"notified_users"`
	// NotifiedIDs lists those senders when include_ids=true.
	NotifiedIDs []string `json:"notified_ids,omitempty"`
	// PageAccessToken is a redacted prefix of the access token.
	PageAccessToken string `json:"page_access_token"`
	// VerifyToken is a redacted prefix of the verify token.
	VerifyToken string `json:"verify_token"`
}

// ResetResponse is returned after the notified table is cleared.
type ResetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Cleared int    `json:"cleared"`
}

// BroadcastResponse summarizes a broadcast run.
type BroadcastResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	BroadcastID string `json:"broadcast_id,omitempty"`
	Attempted   int    `json:"attempted"`
	Succeeded   int    `json:"succeeded"`
	Failed      int    `json:"failed"`
}
