package models

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID    int             `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name  string          `gorm:"not null"                     json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"price"`
	Image string          `gorm:"not null"                     json:"image"`
}
