package models

import "github.com/shopspring/decimal"

// Product represents a stock item in the inventory.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(200);not null"`
	Description *string         `json:"description,omitempty" gorm:"type:varchar(1000)"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(18,2);not null"`
	Stock       int             `json:"stock" gorm:"not null"`
	CategoryID  uint            `json:"category_id" gorm:"not null;index"`
	ImageURL    *string         `json:"image_url,omitempty"`
	ImageBase64 *string         `json:"image_base64,omitempty" gorm:"type:text"`
	IsActive    bool            `json:"is_active" gorm:"not null"`
	Category    Category        `json:"category" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Timestamps
}
