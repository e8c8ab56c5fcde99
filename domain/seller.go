package domain

import "time"

// CREATE TABLE public.sellers (
//     id             BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     business_name  TEXT UNIQUE NOT NULL,
//     contact_email  TEXT NOT NULL,
//     return_ratio   NUMERIC DEFAULT 0,
//     avg_rating     NUMERIC DEFAULT 0,
//     burstiness     NUMERIC DEFAULT 0,
//     fraud_label    SMALLINT NULL,   -- 0 normal, 1 fraudulent, NULL unlabelled
//     created_at     TIMESTAMPTZ DEFAULT NOW()
// );

type Seller struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessName string    `gorm:"column:business_name;unique;not null" json:"business_name"`
	ContactEmail string    `gorm:"column:contact_email;not null" json:"contact_email"`
	ReturnRatio  float64   `gorm:"column:return_ratio;default:0" json:"return_ratio"`
	AvgRating    float64   `gorm:"column:avg_rating;default:0" json:"avg_rating"`
	Burstiness   float64   `gorm:"column:burstiness;default:0" json:"burstiness"`
	FraudLabel   *int      `gorm:"column:fraud_label" json:"fraud_label,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Seller) TableName() string {
	return "sellers"
}

func (s Seller) Features() NodeFeatures {
	return NodeFeatures{ReturnRatio: s.ReturnRatio, AvgRating: s.AvgRating, Burstiness: s.Burstiness}
}
