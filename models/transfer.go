package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletTransfer struct {
	ID           int       `json:"id" db:"id"`
	UserID       int       `json:"user_id" db:"user_id"`
	FromWalletID int       `json:"from_wallet_id" db:"from_wallet_id"`
	ToWalletID   int       `json:"to_wallet_id" db:"to_wallet_id"`
	Amount       float64   `json:"amount" db:"amount"`
	Fees         float64   `json:"fees" db:"fees"`
	Date         time.Time `json:"transfer_date" db:"transfer_date"`
	Description  string    `json:"description" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Заполняются при JOIN с wallets
	FromWalletName string `json:"from_wallet_name" db:"from_wallet_name"`
	FromColor      string `json:"from_color" db:"from_color"`
	ToWalletName   string `json:"to_wallet_name" db:"to_wallet_name"`
	ToColor        string `json:"to_color" db:"to_color"`
	Direction      string `json:"direction,omitempty" db:"direction"`
}

// TransferForm — данные формы перевода между кошельками
type TransferForm struct {
	FromWalletID int     `json:"from_wallet_id"`
	ToWalletID   int     `json:"to_wallet_id"`
	Amount       float64 `json:"amount"`
	Fees         float64 `json:"fees"`
	Date         string  `json:"transfer_date"`
	Description  string  `json:"description"`
}

func (f *TransferForm) Validate() []string {
	var errs []string

	if f.FromWalletID <= 0 || f.ToWalletID <= 0 {
		errs = append(errs, "Выберите кошелёк-источник и кошелёк-получатель.")
	}
	if f.FromWalletID > 0 && f.FromWalletID == f.ToWalletID {
		errs = append(errs, "Кошелёк-источник и кошелёк-получатель должны различаться.")
	}
	if f.Amount <= 0 {
		errs = append(errs, "Укажите сумму перевода больше нуля.")
	}
	if f.Fees < 0 {
		errs = append(errs, "Комиссия не может быть отрицательной.")
	}
	if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		errs = append(errs, "Укажите корректную дату.")
	}

	return errs
}

// TotalAmount — сумма списания с кошелька-источника (перевод + комиссия)
func (f *TransferForm) TotalAmount() decimal.Decimal {
	return decimal.NewFromFloat(f.Amount).Add(decimal.NewFromFloat(f.Fees))
}

// ParsedDate возвращает дату перевода; вызывается после успешной Validate
func (f *TransferForm) ParsedDate() time.Time {
	d, err := time.Parse("2006-01-02", f.Date)
	if err != nil {
		return time.Now()
	}
	return d
}
