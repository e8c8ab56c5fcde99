// Package suspicion asks a generative language model whether a seller looks
// suspicious given a few summary statistics and recent reviews.
package suspicion

import (
	"context"
	"fmt"
	"fraudGuard/domain"
	"fraudGuard/pkg/logger"
	"fraudGuard/pkg/metrics"

	"gorm.io/datatypes"
)

const serviceName = "gemini"

// Generator sends one prompt and returns the reply text plus the raw
// response body for auditing.
type Generator interface {
	Generate(ctx context.Context, prompt string) (text string, raw []byte, err error)
	Model() string
}

// VerdictCache returns (nil, nil) on a miss.
type VerdictCache interface {
	Get(ctx context.Context, digest string) (*domain.SuspicionReport, error)
	Set(ctx context.Context, digest string, report *domain.SuspicionReport) error
}

type AuditRepository interface {
	Save(ctx context.Context, audit *domain.SuspicionAudit) error
}

type suspicionService struct {
	generator Generator
	cache     VerdictCache
	audit     AuditRepository
}

// NewSuspicionService wires the generator. cache and audit may be nil.
func NewSuspicionService(generator Generator, cache VerdictCache, audit AuditRepository) *suspicionService {
	return &suspicionService{
		generator: generator,
		cache:     cache,
		audit:     audit,
	}
}

func (s *suspicionService) Assess(ctx context.Context, req domain.SuspicionRequest) (*domain.SuspicionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	prompt := BuildPrompt(req)
	digest := Digest(s.generator.Model(), prompt)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, digest)
		if err != nil {
			logger.Warn("suspicion cache lookup failed", "digest", digest, "error", err)
		} else if cached != nil {
			cached.Cached = true
			return cached, nil
		}
	}

	text, raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues(serviceName, "error").Inc()
		logger.Error("generative api call failed", "error", err)
		return nil, err
	}

	report, err := ParseReply(text)
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues(serviceName, "malformed").Inc()
		logger.Error("unparseable suspicion reply", "reply", text)
		return nil, &domain.UpstreamError{Service: serviceName, Detail: "reply has no classification line", Err: err}
	}
	metrics.UpstreamCallsTotal.WithLabelValues(serviceName, "ok").Inc()

	if s.cache != nil {
		if err := s.cache.Set(ctx, digest, report); err != nil {
			logger.Warn("suspicion cache store failed", "digest", digest, "error", err)
		}
	}

	if s.audit != nil {
		audit := &domain.SuspicionAudit{
			PromptDigest:   digest,
			Model:          s.generator.Model(),
			Classification: report.Classification,
			Confidence:     report.Confidence,
			Justification:  report.Justification,
			Raw:            rawJSON(raw),
		}
		if err := s.audit.Save(ctx, audit); err != nil {
			logger.Warn("suspicion audit failed", "digest", digest, "error", err)
		}
	}

	return report, nil
}

func rawJSON(raw []byte) datatypes.JSON {
	if len(raw) == 0 {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(raw)
}
