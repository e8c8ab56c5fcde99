package postgres

import (
	"context"
	"fmt"
	"fraudGuard/business/graph"
	"fraudGuard/domain"

	"gorm.io/gorm"
)

type GraphRepository struct {
	DB *gorm.DB
}

func NewGraphRepository(db *gorm.DB) *GraphRepository {
	return &GraphRepository{
		DB: db,
	}
}

type idPair struct {
	A uint64
	B uint64
}

// LoadSnapshot reads every user, product and seller ordered by id, plus the
// distinct review and order pairs, and maps ids to kind-local indices.
func (r *GraphRepository) LoadSnapshot(ctx context.Context) (*graph.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var snap *graph.Snapshot
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		snap, err = loadSnapshot(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func loadSnapshot(tx *gorm.DB) (*graph.Snapshot, error) {
	var users []domain.User
	if err := tx.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	var products []domain.Product
	if err := tx.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	var sellers []domain.Seller
	if err := tx.Order("id").Find(&sellers).Error; err != nil {
		return nil, fmt.Errorf("failed to load sellers: %w", err)
	}

	var reviews []idPair
	err := tx.Model(&domain.Review{}).
		Distinct("user_id AS a", "product_id AS b").
		Order("a, b").
		Scan(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load review pairs: %w", err)
	}

	var orders []idPair
	err = tx.Model(&domain.Order{}).
		Distinct("user_id AS a", "seller_id AS b").
		Order("a, b").
		Scan(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load order pairs: %w", err)
	}

	userIdx := make(map[uint64]int, len(users))
	in := graph.AssemblerInput{
		NumUsers:    len(users),
		NumProducts: len(products),
		NumSellers:  len(sellers),
	}
	for i, u := range users {
		userIdx[u.ID] = i
		in.UserFeatures = append(in.UserFeatures, u.Features())
	}

	snap := &graph.Snapshot{}
	sellerIdx := make(map[uint64]int, len(sellers))
	for i, s := range sellers {
		sellerIdx[s.ID] = i
		in.SellerFeatures = append(in.SellerFeatures, s.Features())
		snap.SellerNames = append(snap.SellerNames, s.BusinessName)

		label := domain.LabelUnknown
		if s.FraudLabel != nil {
			label = *s.FraudLabel
		}
		snap.SellerLabels = append(snap.SellerLabels, label)
	}

	productIdx := make(map[uint64]int, len(products))
	for i, p := range products {
		productIdx[p.ID] = i
		in.ProductFeatures = append(in.ProductFeatures, p.Features())

		s, ok := sellerIdx[p.SellerID]
		if !ok {
			return nil, fmt.Errorf("product %d references unknown seller %d", p.ID, p.SellerID)
		}
		in.ProductSeller = append(in.ProductSeller, graph.Pair{Src: i, Dst: s})
	}

	for _, rv := range reviews {
		u, ok := userIdx[rv.A]
		if !ok {
			return nil, fmt.Errorf("review references unknown user %d", rv.A)
		}
		p, ok := productIdx[rv.B]
		if !ok {
			return nil, fmt.Errorf("review references unknown product %d", rv.B)
		}
		in.UserProduct = append(in.UserProduct, graph.Pair{Src: u, Dst: p})
	}

	for _, o := range orders {
		u, ok := userIdx[o.A]
		if !ok {
			return nil, fmt.Errorf("order references unknown user %d", o.A)
		}
		s, ok := sellerIdx[o.B]
		if !ok {
			return nil, fmt.Errorf("order references unknown seller %d", o.B)
		}
		in.UserSeller = append(in.UserSeller, graph.Pair{Src: u, Dst: s})
	}

	snap.Input = in
	return snap, nil
}
