package models

// Category groups products. ProductCount is only populated by queries that
// explicitly ask for it and is never written back.
type Category struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"uniqueIndex:idx_categories_name;type:varchar(100);not null"`
	Description  *string `json:"description,omitempty" gorm:"type:varchar(500)"`
	IsActive     bool    `json:"is_active" gorm:"not null"`
	ProductCount int64   `json:"product_count" gorm:"->;-:migration"`
	Timestamps
}
