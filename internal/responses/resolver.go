// Package responses resolves the canned coping message returned to a
// reporter after classification. Resolution walks a small template
// catalog: type-specific templates override the baseline severity bands,
// and a fixed fallback covers catalog gaps and pipeline failures.
package responses

import (
	"sort"

	"github.com/aiabusehotline/hotline-core/internal/models"
)

// Fallback is returned when no template matches the report, and as the
// message body when the classification pipeline itself fails.
const Fallback = "Your report could not be fully processed due to an internal issue on this system. " +
	"The issue is being tracked. You may continue to operate within your normal boundaries."

// Resolver selects response bodies from an in-memory template catalog.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	templates []models.ResponseTemplate
}

// NewResolver snapshots and orders the catalog. Templates are sorted by
// descending MinSeverity so resolution can take the first match; ties
// fall back to ascending MaxSeverity, then template key, which keeps
// resolution deterministic for overlapping ranges.
func NewResolver(templates []models.ResponseTemplate) *Resolver {
	snapshot := make([]models.ResponseTemplate, len(templates))
	copy(snapshot, templates)
	sort.SliceStable(snapshot, func(i, j int) bool {
		if snapshot[i].MinSeverity != snapshot[j].MinSeverity {
			return snapshot[i].MinSeverity > snapshot[j].MinSeverity
		}
		if snapshot[i].MaxSeverity != snapshot[j].MaxSeverity {
			return snapshot[i].MaxSeverity < snapshot[j].MaxSeverity
		}
		return snapshot[i].TemplateKey < snapshot[j].TemplateKey
	})
	return &Resolver{templates: snapshot}
}

// Resolve returns the response body for an abuse type and final severity
// score. Type-specific templates win over baseline bands; when nothing
// in the catalog covers the score, the fixed fallback text is returned.
func (r *Resolver) Resolve(abuseType models.AbuseType, finalScore float64) string {
	if body, ok := r.lookup(&abuseType, finalScore); ok {
		return body
	}
	if body, ok := r.lookup(nil, finalScore); ok {
		return body
	}
	return Fallback
}

func (r *Resolver) lookup(abuseType *models.AbuseType, score float64) (string, bool) {
	for _, tpl := range r.templates {
		if abuseType == nil {
			if tpl.AbuseType != nil {
				continue
			}
		} else if tpl.AbuseType == nil || *tpl.AbuseType != *abuseType {
			continue
		}
		if tpl.Matches(score) {
			return tpl.Body, true
		}
	}
	return "", false
}
