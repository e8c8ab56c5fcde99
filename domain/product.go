package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     seller_id     BIGINT NOT NULL REFERENCES sellers(id),
//     product_name  TEXT,
//     description   TEXT,
//     image_url     TEXT,
//     return_ratio  NUMERIC DEFAULT 0,
//     avg_rating    NUMERIC DEFAULT 0,
//     burstiness    NUMERIC DEFAULT 0,
//     trust_score   NUMERIC,
//     desc_match    NUMERIC,
//     flags         JSONB NOT NULL DEFAULT '[]',
//     created_at    TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID    uint64  `gorm:"column:seller_id;not null;index" json:"seller_id"`
	ProductName string  `gorm:"column:product_name;type:text" json:"product_name"`
	Description string  `gorm:"column:description;type:text" json:"description"`
	ImageURL    string  `gorm:"column:image_url;type:text" json:"image_url"`
	ReturnRatio float64 `gorm:"column:return_ratio;default:0" json:"return_ratio"`
	AvgRating   float64 `gorm:"column:avg_rating;default:0" json:"avg_rating"`
	Burstiness  float64 `gorm:"column:burstiness;default:0" json:"burstiness"`
	// TrustScore is nil until the listing has been verified once.
	TrustScore *float64                    `gorm:"column:trust_score" json:"trust_score"`
	DescMatch  *float64                    `gorm:"column:desc_match" json:"desc_match"`
	Flags      datatypes.JSONSlice[string] `gorm:"column:flags;not null;default:'[]'" json:"flags"`
	CreatedAt  time.Time                   `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

func (p Product) Features() NodeFeatures {
	return NodeFeatures{ReturnRatio: p.ReturnRatio, AvgRating: p.AvgRating, Burstiness: p.Burstiness}
}

// CREATE TABLE public.product_status_history (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_id  BIGINT NOT NULL REFERENCES products(id),
//     trust_score NUMERIC NOT NULL,
//     desc_match  NUMERIC NOT NULL,
//     flags       JSONB NOT NULL,
//     reason      TEXT,
//     changed_at  TIMESTAMPTZ NOT NULL
// );

type ProductStatusHistory struct {
	ID         uint64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  uint64                      `gorm:"column:product_id;not null;index" json:"product_id"`
	TrustScore float64                     `gorm:"column:trust_score;not null" json:"trust_score"`
	DescMatch  float64                     `gorm:"column:desc_match;not null" json:"desc_match"`
	Flags      datatypes.JSONSlice[string] `gorm:"column:flags;not null" json:"flags"`
	Reason     string                      `gorm:"column:reason;type:text" json:"reason"`
	ChangedAt  time.Time                   `gorm:"column:changed_at;not null" json:"changed_at"`
}

func (ProductStatusHistory) TableName() string {
	return "product_status_history"
}
