package suspicion

import (
	"encoding/hex"
	"fmt"
	"fraudGuard/domain"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const promptHeader = "Analyze the following seller data and answer ONLY with either \"suspicious\" " +
	"or \"not suspicious\", followed by a brief justification and a confidence score (0-100)." +
	"Respond in this format:\nClassification: [label]\nJustification: [text]\nConfidence: [score]\n\n"

// BuildPrompt renders the seller data into the fixed instruction template.
func BuildPrompt(req domain.SuspicionRequest) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	b.WriteString("Seller Data:\n")
	fmt.Fprintf(&b, "- Return rate: %s\n", req.ReturnRate)
	fmt.Fprintf(&b, "- Average product rating: %s\n", req.AverageRating)
	b.WriteString("- Recent reviews:")
	if len(req.RecentReviews) > 0 {
		b.WriteString("\n  • ")
		b.WriteString(strings.Join(req.RecentReviews, "\n  • "))
	}
	b.WriteString("\n")
	return b.String()
}

// Digest keys a prompt for caching and auditing.
func Digest(model, prompt string) string {
	sum := blake2b.Sum256([]byte(model + "\x00" + prompt))
	return hex.EncodeToString(sum[:])
}

// ParseReply extracts the three labelled lines from a free-text reply. Keys
// match case-insensitively and may carry markdown emphasis; the
// classification is lower-cased.
func ParseReply(text string) (*domain.SuspicionReport, error) {
	report := &domain.SuspicionReport{Raw: text}

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(strings.Trim(value, "* "))

		switch strings.ToLower(strings.Trim(key, "*-# ")) {
		case "classification":
			report.Classification = strings.ToLower(value)
		case "justification":
			report.Justification = value
		case "confidence":
			report.Confidence = value
			report.ConfidenceScore = parseConfidence(value)
		}
	}

	if report.Classification == "" {
		return nil, domain.ErrMalformedReply
	}
	return report, nil
}

// parseConfidence accepts "87", "87%" or "87.5" and clamps to 0-100.
func parseConfidence(s string) *int {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v := int(f + 0.5)
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return &v
}
