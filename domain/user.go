package domain

import (
	"time"
)

// CREATE TABLE public.users (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     external_id  TEXT UNIQUE NOT NULL,
//     is_anonymous BOOLEAN DEFAULT TRUE,
//     created_at   TIMESTAMPTZ DEFAULT NOW()
// );

// User is created lazily the first time an external id shows up in the
// interaction feed. Authentication lives outside this service.
type User struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalID  string    `gorm:"column:external_id;type:text;unique;not null" json:"external_id"`
	IsAnonymous bool      `gorm:"column:is_anonymous;default:true" json:"is_anonymous"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
