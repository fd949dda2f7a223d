package models

import "time"

type MonthlyBudget struct {
	ID           int       `json:"id" db:"id"`
	UserID       int       `json:"user_id" db:"user_id"`
	CategoryID   int       `json:"category_id" db:"category_id"`
	MonthYear    time.Time `json:"month_year" db:"month_year"`
	BudgetAmount float64   `json:"budget_amount" db:"budget_amount"`

	// Заполняются при JOIN с transaction_categories и transactions
	CategoryName string  `json:"category_name,omitempty" db:"category_name"`
	SpentAmount  float64 `json:"spent_amount" db:"spent_amount"`
}

// Remaining возвращает остаток бюджета на месяц
func (b *MonthlyBudget) Remaining() float64 {
	return b.BudgetAmount - b.SpentAmount
}

// BudgetWarning — предупреждение о превышении месячного бюджета.
// Не блокирует запись расхода, только показывается пользователю.
type BudgetWarning struct {
	CategoryName string  `json:"category_name"`
	BudgetAmount float64 `json:"budget_amount"`
	SpentAmount  float64 `json:"spent_amount"`
	NewTotal     float64 `json:"new_total"`
	Remaining    float64 `json:"remaining"`
}

// BudgetForm — данные формы месячного бюджета
type BudgetForm struct {
	CategoryID   int     `json:"category_id"`
	MonthYear    string  `json:"month_year"`
	BudgetAmount float64 `json:"budget_amount"`
}

func (f *BudgetForm) Validate() []string {
	var errs []string

	if f.CategoryID <= 0 {
		errs = append(errs, "Выберите категорию.")
	}
	if f.BudgetAmount <= 0 {
		errs = append(errs, "Укажите сумму бюджета больше нуля.")
	}
	if _, err := time.Parse("2006-01", f.MonthYear); err != nil {
		errs = append(errs, "Укажите месяц в формате ГГГГ-ММ.")
	}

	return errs
}

// ParsedMonth возвращает первый день месяца бюджета
func (f *BudgetForm) ParsedMonth() time.Time {
	d, err := time.Parse("2006-01", f.MonthYear)
	if err != nil {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return d
}
