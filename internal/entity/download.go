package entity

import "time"

type Download struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	TemplateID     string    `json:"template_id"`
	CostCredits    int       `json:"cost_credits"`
	IdempotencyKey string    `json:"idempotency_key"`
	CreatedAt      time.Time `json:"created_at"`
}

// DownloadResult is the service-level outcome of a download request.
type DownloadResult struct {
	Success           bool   `json:"success"`
	DownloadURL       string `json:"download_url,omitempty"`
	AlreadyDownloaded bool   `json:"already_downloaded,omitempty"`
	Error             string `json:"error,omitempty"`
}
