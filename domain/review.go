package domain

import "time"

// Review links a user to a product. Each distinct (user, product) pair is one
// "reviews" relationship in the seller graph.
type Review struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;index" json:"user_id"`
	ProductID uint64    `gorm:"column:product_id;not null;index" json:"product_id"`
	Rating    int       `gorm:"column:rating" json:"rating"`
	Comment   string    `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
