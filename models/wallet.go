package models

import (
	"strings"
	"time"
)

type Wallet struct {
	ID             int        `json:"id" db:"id"`
	UserID         int        `json:"user_id" db:"user_id"`
	WalletTypeID   int        `json:"wallet_type_id" db:"wallet_type_id"`
	Name           string     `json:"wallet_name" db:"wallet_name"`
	Description    string     `json:"description" db:"description"`
	Balance        float64    `json:"balance" db:"balance"`
	AccountNumber  string     `json:"account_number" db:"account_number"`
	BankName       string     `json:"bank_name" db:"bank_name"`
	CardLastFour   string     `json:"card_last_four" db:"card_last_four"`
	CardExpiryDate *time.Time `json:"card_expiry_date" db:"card_expiry_date"`
	CreditLimit    float64    `json:"credit_limit" db:"credit_limit"`
	ColorCode      string     `json:"color_code" db:"color_code"`
	IsDefault      bool       `json:"is_default" db:"is_default"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`

	// Заполняются при JOIN с wallet_types
	TypeName  string `json:"type_name" db:"type_name"`
	IconClass string `json:"icon_class" db:"icon_class"`
}

// AvailableCredit возвращает доступный кредитный лимит
func (w *Wallet) AvailableCredit() float64 {
	return w.CreditLimit - w.Balance
}

// WalletForm — данные формы создания кошелька
type WalletForm struct {
	Name           string  `json:"wallet_name"`
	WalletTypeID   int     `json:"wallet_type_id"`
	Description    string  `json:"description"`
	InitialBalance float64 `json:"initial_balance"`
	AccountNumber  string  `json:"account_number"`
	BankName       string  `json:"bank_name"`
	CardLastFour   string  `json:"card_last_four"`
	CardExpiryDate string  `json:"card_expiry_date"`
	CreditLimit    float64 `json:"credit_limit"`
	ColorCode      string  `json:"color_code"`
	IsDefault      bool    `json:"is_default"`
}

func (f *WalletForm) Validate() []string {
	var errs []string

	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, "Укажите название кошелька.")
	}
	if len(f.Name) > 100 {
		errs = append(errs, "Название кошелька не должно превышать 100 символов.")
	}
	if f.WalletTypeID <= 0 {
		errs = append(errs, "Выберите тип кошелька.")
	}
	if f.InitialBalance < 0 {
		errs = append(errs, "Начальный баланс не может быть отрицательным.")
	}
	if f.CreditLimit < 0 {
		errs = append(errs, "Кредитный лимит не может быть отрицательным.")
	}
	if f.CardExpiryDate != "" {
		if _, err := time.Parse("2006-01-02", f.CardExpiryDate); err != nil {
			errs = append(errs, "Укажите корректную дату окончания действия карты.")
		}
	}

	return errs
}

// ToWallet собирает сущность кошелька из данных формы
func (f *WalletForm) ToWallet(userID int) *Wallet {
	w := &Wallet{
		UserID:        userID,
		WalletTypeID:  f.WalletTypeID,
		Name:          strings.TrimSpace(f.Name),
		Description:   strings.TrimSpace(f.Description),
		Balance:       f.InitialBalance,
		AccountNumber: strings.TrimSpace(f.AccountNumber),
		BankName:      strings.TrimSpace(f.BankName),
		CreditLimit:   f.CreditLimit,
		ColorCode:     f.ColorCode,
		IsDefault:     f.IsDefault,
		IsActive:      true,
	}
	if w.ColorCode == "" {
		w.ColorCode = "#3498db"
	}
	if n := len(f.CardLastFour); n > 4 {
		w.CardLastFour = f.CardLastFour[n-4:]
	} else {
		w.CardLastFour = f.CardLastFour
	}
	if f.CardExpiryDate != "" {
		if d, err := time.Parse("2006-01-02", f.CardExpiryDate); err == nil {
			w.CardExpiryDate = &d
		}
	}
	return w
}
