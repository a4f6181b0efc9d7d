// Package route classifies a claim into exactly one workflow queue.
//
// Rules run in strict priority order and the first match wins:
//
//  1. any mandatory field missing       -> Manual review
//  2. description has a fraud keyword    -> Investigation Flag
//  3. claim type mentions injury         -> Specialist Queue
//  4. estimated damage below threshold   -> Fast-track
//  5. otherwise                          -> Standard Queue
package route

import (
	"fmt"
	"strconv"
	"strings"

	"fnol/internal/claim"
	"fnol/internal/config"
	"fnol/internal/display"
)

// Router holds its own copy of the routing configuration.
type Router struct {
	fraudKeywords []string
	injuryKeyword string
	threshold     float64

	descriptionField string
	claimTypeField   string
	estimateField    string
}

// New builds a Router from cfg. Keywords are lower-cased once here.
func New(cfg config.Config) *Router {
	kws := make([]string, len(cfg.FraudKeywords))
	for i, kw := range cfg.FraudKeywords {
		kws[i] = strings.ToLower(kw)
	}
	return &Router{
		fraudKeywords:    kws,
		injuryKeyword:    strings.ToLower(cfg.InjuryKeyword),
		threshold:        cfg.FastTrackThreshold,
		descriptionField: cfg.DescriptionField,
		claimTypeField:   cfg.ClaimTypeField,
		estimateField:    cfg.EstimateField,
	}
}

// Threshold returns the fast-track limit the router was built with.
func (r *Router) Threshold() float64 { return r.threshold }

// Route returns the decision for the given fields and missing list.
func (r *Router) Route(fields claim.Fields, missing []string) claim.Decision {
	if len(missing) > 0 {
		return claim.Decision{
			Route:     claim.ManualReview,
			Reasoning: "Mandatory fields missing: " + display.FieldList(missing) + ".",
		}
	}

	description := strings.ToLower(fields.Text(r.descriptionField))
	if kw, ok := firstKeyword(description, r.fraudKeywords); ok {
		return claim.Decision{
			Route:     claim.InvestigationFlag,
			Reasoning: fmt.Sprintf("Description contains the keyword %q, which may indicate fraud.", kw),
		}
	}

	claimType := fields.Text(r.claimTypeField)
	if r.injuryKeyword != "" && strings.Contains(strings.ToLower(claimType), r.injuryKeyword) {
		return claim.Decision{
			Route:     claim.SpecialistQueue,
			Reasoning: fmt.Sprintf("Claim type %q includes %s, so it goes to the specialist queue.", claimType, r.injuryKeyword),
		}
	}

	if amount, ok := fields.Amount(r.estimateField); ok && amount < r.threshold {
		return claim.Decision{
			Route: claim.FastTrack,
			Reasoning: fmt.Sprintf("Estimated damage %s is below the fast-track threshold of %s.",
				FormatAmount(amount), FormatAmount(r.threshold)),
		}
	}

	return claim.Decision{
		Route:     claim.StandardQueue,
		Reasoning: "All mandatory fields present and no special routing condition applied.",
	}
}

func firstKeyword(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

// FormatAmount renders an amount with thousands separators and at most two
// decimals, e.g. 24999.99 -> "24,999.99", 25000 -> "25,000".
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimSuffix(s, ".00")

	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
