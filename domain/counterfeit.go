package domain

import "time"

const (
	ImageLabelGenuine = "Genuine"
	ImageLabelFake    = "Fake"
)

type ImageMatch struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ProductVerification is the outcome of checking a stored listing, as written
// back to the product.
type ProductVerification struct {
	ProductID  uint64    `json:"product_id"`
	Label      string    `json:"label"`
	Score      float64   `json:"score"`
	TrustScore float64   `json:"trust_score"`
	Flags      []string  `json:"flags"`
	Reason     string    `json:"-"`
	CheckedAt  time.Time `json:"checked_at"`
}
