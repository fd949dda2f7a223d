package models_test

import (
	"strings"
	"testing"

	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func TestWalletFormValidate(t *testing.T) {
	form := &models.WalletForm{
		Name:           "Основная карта",
		WalletTypeID:   2,
		InitialBalance: 1500.00,
	}

	if errs := form.Validate(); len(errs) != 0 {
		t.Errorf("корректная форма кошелька не прошла валидацию: %v", errs)
	}
}

func TestWalletFormRejectsEmptyNameAndType(t *testing.T) {
	form := &models.WalletForm{Name: "  ", WalletTypeID: 0}

	errs := form.Validate()
	if len(errs) != 2 {
		t.Errorf("ожидали две ошибки валидации, получили %v", errs)
	}
}

func TestWalletFormRejectsLongName(t *testing.T) {
	form := &models.WalletForm{
		Name:         strings.Repeat("к", 101),
		WalletTypeID: 1,
	}

	if errs := form.Validate(); len(errs) != 1 {
		t.Errorf("ожидали ошибку длины названия, получили %v", errs)
	}
}

func TestToWalletDefaults(t *testing.T) {
	form := &models.WalletForm{
		Name:         " Наличные ",
		WalletTypeID: 1,
		CardLastFour: "1234567890",
	}

	w := form.ToWallet(5)
	if w.Name != "Наличные" {
		t.Errorf("название не очищено от пробелов: %q", w.Name)
	}
	if w.ColorCode != "#3498db" {
		t.Errorf("цвет по умолчанию не подставлен: %q", w.ColorCode)
	}
	if w.CardLastFour != "7890" {
		t.Errorf("последние цифры карты обрезаны неверно: %q", w.CardLastFour)
	}
	if !w.IsActive {
		t.Error("новый кошелёк должен быть активен")
	}
}
