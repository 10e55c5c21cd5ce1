package models

import "github.com/shopspring/decimal"

type Product struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	TraySize string          `json:"tray_size"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	IsActive bool            `json:"is_active"`
}
