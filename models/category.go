package models

type Category struct {
	ID          int    `json:"id" db:"id"`
	UserID      *int   `json:"user_id" db:"user_id"` // NULL — общая категория для всех пользователей
	Name        string `json:"category_name" db:"category_name"`
	Type        string `json:"category_type" db:"category_type"`
	Description string `json:"description" db:"description"`
}

// IsShared сообщает, доступна ли категория всем пользователям
func (c *Category) IsShared() bool {
	return c.UserID == nil
}
