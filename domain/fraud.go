package domain

type SellerFraudReport struct {
	Seller           string       `json:"seller"`
	Features         NodeFeatures `json:"features"`
	FraudProbability float64      `json:"fraud_probability"`
}

type BatchFraudReport struct {
	Reports  []SellerFraudReport `json:"reports"`
	NotFound []string            `json:"not_found"`
}
