package models

type WalletType struct {
	ID       int    `json:"id" db:"id"`
	TypeName string `json:"type_name" db:"type_name"`
	Icon     string `json:"icon_class" db:"icon_class"`
	IsActive bool   `json:"is_active" db:"is_active"`
}
