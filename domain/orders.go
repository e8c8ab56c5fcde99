package domain

import "time"

// Order records a purchase; each distinct (user, seller) pair is one "bought"
// relationship in the seller graph.
type Order struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;index" json:"user_id"`
	SellerID  uint64    `gorm:"column:seller_id;not null;index" json:"seller_id"`
	ProductID uint64    `gorm:"column:product_id;not null" json:"product_id"`
	Returned  bool      `gorm:"column:returned;default:false" json:"returned"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}
