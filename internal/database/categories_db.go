package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func CreateCategory(pool *pgxpool.Pool, category *models.Category) error {
	query := `
		INSERT INTO transaction_categories (user_id, category_name, category_type, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := pool.QueryRow(context.Background(), query,
		category.UserID,
		category.Name,
		category.Type,
		category.Description).Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении категории: %v", err)
	}
	return nil
}

func GetCategoryByID(pool *pgxpool.Pool, categoryID int) (*models.Category, error) {
	query := `
		SELECT id, user_id, category_name, category_type, description
		FROM transaction_categories
		WHERE id = $1`

	category := &models.Category{}
	err := pool.QueryRow(context.Background(), query, categoryID).Scan(
		&category.ID,
		&category.UserID,
		&category.Name,
		&category.Type,
		&category.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("категория с ID %d не найдена", categoryID)
		}
		return nil, fmt.Errorf("ошибка при получении категории: %v", err)
	}
	return category, nil
}

// GetCategoriesForUser возвращает общие категории и категории пользователя,
// при необходимости отфильтрованные по типу (income/expense)
func GetCategoriesForUser(pool *pgxpool.Pool, userID int, categoryType string) ([]models.Category, error) {
	query := `
		SELECT id, user_id, category_name, category_type, description
		FROM transaction_categories
		WHERE (user_id = $1 OR user_id IS NULL)
		  AND ($2 = '' OR category_type = $2)
		ORDER BY category_name`

	rows, err := pool.Query(context.Background(), query, userID, categoryType)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка категорий: %v", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// findOrCreateFeeCategoryTx ищет категорию "Комиссии банка" среди общих и
// пользовательских, при отсутствии создаёт её для пользователя
func findOrCreateFeeCategoryTx(ctx context.Context, tx pgx.Tx, userID int) (int, error) {
	var categoryID int
	err := tx.QueryRow(ctx, `
		SELECT id FROM transaction_categories
		WHERE category_name = 'Комиссии банка'
		  AND category_type = 'expense'
		  AND (user_id = $1 OR user_id IS NULL)
		LIMIT 1`, userID).Scan(&categoryID)
	if err == nil {
		return categoryID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("ошибка поиска категории комиссий: %v", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO transaction_categories (user_id, category_name, category_type, description)
		VALUES ($1, 'Комиссии банка', 'expense', 'Банковские комиссии и сборы')
		RETURNING id`, userID).Scan(&categoryID)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания категории комиссий: %v", err)
	}
	return categoryID, nil
}
