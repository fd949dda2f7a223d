package models

import (
	"strings"
	"time"
)

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

type Transaction struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id"`
	WalletID    int       `json:"wallet_id" db:"wallet_id"`
	CategoryID  int       `json:"category_id" db:"category_id"`
	Type        string    `json:"transaction_type" db:"transaction_type"`
	Amount      float64   `json:"amount" db:"amount"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"transaction_date" db:"transaction_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Заполняются при JOIN с transaction_categories
	CategoryName string `json:"category_name" db:"category_name"`
	CategoryType string `json:"category_type" db:"category_type"`
}

// TransactionForm — данные формы добавления дохода или расхода
type TransactionForm struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	CategoryID  int     `json:"category_id"`
	WalletID    int     `json:"wallet_id"`
	Date        string  `json:"transaction_date"`
}

func (f *TransactionForm) Validate() []string {
	var errs []string

	if f.Amount <= 0 {
		errs = append(errs, "Укажите сумму больше нуля.")
	}
	if strings.TrimSpace(f.Description) == "" {
		errs = append(errs, "Укажите описание операции.")
	}
	if f.CategoryID <= 0 {
		errs = append(errs, "Выберите категорию.")
	}
	if f.WalletID <= 0 {
		errs = append(errs, "Выберите кошелёк.")
	}
	if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		errs = append(errs, "Укажите корректную дату.")
	}

	return errs
}

// ParsedDate возвращает дату операции; вызывается после успешной Validate
func (f *TransactionForm) ParsedDate() time.Time {
	d, err := time.Parse("2006-01-02", f.Date)
	if err != nil {
		return time.Now()
	}
	return d
}

// ToTransaction собирает сущность операции из данных формы
func (f *TransactionForm) ToTransaction(userID int, txType string) *Transaction {
	return &Transaction{
		UserID:      userID,
		WalletID:    f.WalletID,
		CategoryID:  f.CategoryID,
		Type:        txType,
		Amount:      f.Amount,
		Description: strings.TrimSpace(f.Description),
		Date:        f.ParsedDate(),
	}
}
