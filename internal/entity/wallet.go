package entity

import "time"

type CreditTransactionType string

const (
	CreditTransactionTypeTopUp    CreditTransactionType = "topup"
	CreditTransactionTypeDownload CreditTransactionType = "download"
	CreditTransactionTypeRefund   CreditTransactionType = "refund"
	CreditTransactionTypeGrant    CreditTransactionType = "grant"
)

type Wallet struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Balance   int       `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreditTransaction struct {
	ID            string                `json:"id"`
	UserID        string                `json:"user_id"`
	TemplateID    string                `json:"template_id,omitempty"`
	Type          CreditTransactionType `json:"type"`
	Amount        int                   `json:"amount"`
	BalanceBefore int                   `json:"balance_before"`
	BalanceAfter  int                   `json:"balance_after"`
	CreatedAt     time.Time             `json:"created_at"`
}
