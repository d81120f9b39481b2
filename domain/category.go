package domain

import (
	"time"
)

// CREATE TABLE public.categories (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name       TEXT NOT NULL,
//     created_at TIMESTAMPTZ DEFAULT NOW()
// );

type Category struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
