package models

import "time"

// Типы изменений баланса в журнале кошелька
const (
	ChangeAdjustment  = "adjustment"
	ChangeIncome      = "income"
	ChangeExpense     = "expense"
	ChangeTransferIn  = "transfer_in"
	ChangeTransferOut = "transfer_out"
)

// WalletHistoryEntry — строка append-only журнала изменений баланса.
// Журнал только пишется при каждой операции; читает его страница кошелька.
type WalletHistoryEntry struct {
	ID              int       `json:"id" db:"id"`
	WalletID        int       `json:"wallet_id" db:"wallet_id"`
	PreviousBalance float64   `json:"previous_balance" db:"previous_balance"`
	NewBalance      float64   `json:"new_balance" db:"new_balance"`
	ChangeAmount    float64   `json:"change_amount" db:"change_amount"`
	ChangeType      string    `json:"change_type" db:"change_type"`
	Description     string    `json:"description" db:"description"`
	TransactionID   *int      `json:"transaction_id,omitempty" db:"transaction_id"`
	TransferID      *int      `json:"transfer_id,omitempty" db:"transfer_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
