package models

import (
	"strings"
	"time"
)

type SavingsGoal struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	Name          string    `json:"goal_name" db:"goal_name"`
	TargetAmount  float64   `json:"target_amount" db:"target_amount"`
	CurrentAmount float64   `json:"current_amount" db:"current_amount"`
	Deadline      time.Time `json:"deadline_date" db:"deadline_date"`
	IsCompleted   bool      `json:"is_completed" db:"is_completed"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

func (g *SavingsGoal) RemainingAmount() float64 {
	return g.TargetAmount - g.CurrentAmount
}

// Progress возвращает процент накопления
func (g *SavingsGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}

// GoalForm — данные формы цели накопления
type GoalForm struct {
	Name         string  `json:"goal_name"`
	TargetAmount float64 `json:"target_amount"`
	Deadline     string  `json:"deadline_date"`
}

func (f *GoalForm) Validate() []string {
	var errs []string

	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, "Укажите название цели.")
	}
	if f.TargetAmount <= 0 {
		errs = append(errs, "Укажите целевую сумму больше нуля.")
	}
	if _, err := time.Parse("2006-01-02", f.Deadline); err != nil {
		errs = append(errs, "Укажите корректный срок достижения цели.")
	}

	return errs
}

// ParsedDeadline возвращает срок цели; вызывается после успешной Validate
func (f *GoalForm) ParsedDeadline() time.Time {
	d, err := time.Parse("2006-01-02", f.Deadline)
	if err != nil {
		return time.Now()
	}
	return d
}
