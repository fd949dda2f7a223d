package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func TestTransferFormValidate(t *testing.T) {
	form := &models.TransferForm{
		FromWalletID: 1,
		ToWalletID:   2,
		Amount:       40.00,
		Fees:         2.00,
		Date:         "2025-03-14",
	}

	if errs := form.Validate(); len(errs) != 0 {
		t.Errorf("корректная форма перевода не прошла валидацию: %v", errs)
	}
}

func TestTransferFormRejectsSameWallet(t *testing.T) {
	form := &models.TransferForm{
		FromWalletID: 3,
		ToWalletID:   3,
		Amount:       10,
		Date:         "2025-03-14",
	}

	errs := form.Validate()
	if len(errs) != 1 {
		t.Fatalf("ожидали одну ошибку для одинаковых кошельков, получили %v", errs)
	}
}

func TestTransferFormRejectsNegativeFees(t *testing.T) {
	form := &models.TransferForm{
		FromWalletID: 1,
		ToWalletID:   2,
		Amount:       10,
		Fees:         -1,
		Date:         "2025-03-14",
	}

	if errs := form.Validate(); len(errs) != 1 {
		t.Errorf("ожидали одну ошибку для отрицательной комиссии, получили %v", errs)
	}
}

func TestTransferFormRejectsZeroAmountAndBadDate(t *testing.T) {
	form := &models.TransferForm{
		FromWalletID: 1,
		ToWalletID:   2,
		Amount:       0,
		Date:         "14.03.2025",
	}

	if errs := form.Validate(); len(errs) != 2 {
		t.Errorf("ожидали две ошибки, получили %v", errs)
	}
}

func TestTransferTotalAmount(t *testing.T) {
	form := &models.TransferForm{Amount: 40.00, Fees: 2.00}

	want := decimal.NewFromFloat(42.00)
	if !form.TotalAmount().Equal(want) {
		t.Errorf("сумма списания: получили %s, хотели %s", form.TotalAmount(), want)
	}
}
