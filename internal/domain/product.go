package domain

import "time"

// Product is catalog data owned by the catalog back office; the storefront
// only reads it. Price is in cents.
type Product struct {
	ID              int64      `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Description     string     `db:"description" json:"description"`
	Price           int64      `db:"price" json:"price"`
	Category        string     `db:"category" json:"category"`
	StockPlantNorth int64      `db:"stock_plant_north" json:"stock_plant_north"`
	StockPlantSouth int64      `db:"stock_plant_south" json:"stock_plant_south"`
	ImageUrl        string     `db:"image_url" json:"image_url"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at" json:"-"`
}
