package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     external_id TEXT,
//     name        TEXT NOT NULL,
//     description TEXT,
//     price       NUMERIC,
//     image_url   TEXT,
//     category_id BIGINT,
//     is_active   BOOLEAN DEFAULT TRUE,
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalID  string    `gorm:"column:external_id;type:text" json:"external_id"`
	Name        string    `gorm:"column:name;type:text;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Price       float64   `gorm:"column:price;type:numeric" json:"price"`
	ImageURL    string    `gorm:"column:image_url;type:text" json:"image_url"`
	CategoryID  uint64    `gorm:"column:category_id;default:0" json:"category_id"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
