package counterfeit

import (
	"fraudGuard/domain"
	"math"
	"slices"
	"time"
)

const (
	FlagDescImageMismatch = "desc_image_mismatch"

	trustPenalty = 0.2
	trustReward  = 0.1
	// unverified listings jump straight to these
	firstFakeTrust    = 0.2
	firstGenuineTrust = 1.0

	verificationReason = "Image-description analysis (auto)"
)

// applyVerdict derives the stored trust state of a listing from one image
// match. A mismatch costs trustPenalty, a match earns trustReward, both
// clamped to [0,1].
func applyVerdict(product domain.Product, match domain.ImageMatch, now time.Time) domain.ProductVerification {
	flags := slices.DeleteFunc(slices.Clone([]string(product.Flags)), func(f string) bool {
		return f == FlagDescImageMismatch
	})
	if flags == nil {
		flags = []string{}
	}

	var trust float64
	if match.Label == domain.ImageLabelFake {
		flags = append(flags, FlagDescImageMismatch)
		trust = firstFakeTrust
		if product.TrustScore != nil {
			trust = math.Max(0, *product.TrustScore-trustPenalty)
		}
	} else {
		trust = firstGenuineTrust
		if product.TrustScore != nil {
			trust = math.Min(1, *product.TrustScore+trustReward)
		}
	}

	return domain.ProductVerification{
		ProductID:  product.ID,
		Label:      match.Label,
		Score:      match.Score,
		TrustScore: trust,
		Flags:      flags,
		Reason:     verificationReason,
		CheckedAt:  now,
	}
}
