package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

// GetWalletTypes возвращает активные типы кошельков. Справочные данные,
// только для чтения.
func GetWalletTypes(pool *pgxpool.Pool) ([]models.WalletType, error) {
	query := `
		SELECT id, type_name, icon_class, is_active
		FROM wallet_types
		WHERE is_active = TRUE
		ORDER BY type_name`

	rows, err := pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении типов кошельков: %v", err)
	}
	defer rows.Close()

	var types []models.WalletType
	for rows.Next() {
		var t models.WalletType
		if err := rows.Scan(&t.ID, &t.TypeName, &t.Icon, &t.IsActive); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}
