package models_test

import (
	"testing"

	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func TestTransactionFormValidate(t *testing.T) {
	form := &models.TransactionForm{
		Amount:      250.50,
		Description: "Продукты на неделю",
		CategoryID:  3,
		WalletID:    1,
		Date:        "2025-03-14",
	}

	if errs := form.Validate(); len(errs) != 0 {
		t.Errorf("корректная форма не прошла валидацию: %v", errs)
	}
}

func TestTransactionFormValidateRejectsBadInput(t *testing.T) {
	form := &models.TransactionForm{
		Amount:      -10,
		Description: "   ",
		CategoryID:  0,
		WalletID:    0,
		Date:        "не дата",
	}

	errs := form.Validate()
	if len(errs) != 5 {
		t.Errorf("ожидали 5 ошибок валидации, получили %d: %v", len(errs), errs)
	}
}

func TestTransactionFormValidateZeroAmount(t *testing.T) {
	form := &models.TransactionForm{
		Amount:      0,
		Description: "Платёж",
		CategoryID:  1,
		WalletID:    1,
		Date:        "2025-03-14",
	}

	errs := form.Validate()
	if len(errs) != 1 {
		t.Fatalf("ожидали одну ошибку для нулевой суммы, получили %v", errs)
	}
}

func TestToTransaction(t *testing.T) {
	form := &models.TransactionForm{
		Amount:      99.90,
		Description: "  Зарплата  ",
		CategoryID:  2,
		WalletID:    4,
		Date:        "2025-01-31",
	}

	tr := form.ToTransaction(7, models.TransactionIncome)
	if tr.UserID != 7 || tr.Type != models.TransactionIncome {
		t.Errorf("неверные пользователь или тип операции: %+v", tr)
	}
	if tr.Description != "Зарплата" {
		t.Errorf("описание не очищено от пробелов: %q", tr.Description)
	}
	if tr.Date.Format("2006-01-02") != "2025-01-31" {
		t.Errorf("дата операции разобрана неверно: %v", tr.Date)
	}
}
