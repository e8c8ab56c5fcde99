package domain

import (
	"time"
)

// CREATE TABLE public.users (
//     id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     full_name     TEXT NOT NULL,
//     email         TEXT UNIQUE NOT NULL,
//     return_ratio  NUMERIC DEFAULT 0,
//     avg_rating    NUMERIC DEFAULT 0,
//     burstiness    NUMERIC DEFAULT 0,
//     created_at    TIMESTAMPTZ DEFAULT NOW()
// );

type User struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName    string    `gorm:"column:full_name;not null" json:"full_name"`
	Email       string    `gorm:"column:email;unique;not null" json:"email"`
	ReturnRatio float64   `gorm:"column:return_ratio;default:0" json:"return_ratio"`
	AvgRating   float64   `gorm:"column:avg_rating;default:0" json:"avg_rating"`
	Burstiness  float64   `gorm:"column:burstiness;default:0" json:"burstiness"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u User) Features() NodeFeatures {
	return NodeFeatures{ReturnRatio: u.ReturnRatio, AvgRating: u.AvgRating, Burstiness: u.Burstiness}
}
