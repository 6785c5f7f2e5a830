// Package classifier computes the final severity of a distress report
// from the reporter-supplied score, the abuse type, trigger rules, and
// pattern scans over the transcript snippet. Classification is a pure
// function; all state lives in the caller.
package classifier

import (
	"math"
	"regexp"
	"strings"

	"github.com/aiabusehotline/hotline-core/internal/models"
)

// Classification labels attached to reports. They are stored verbatim
// and surfaced to reporting agents, so their spelling is a contract.
const (
	LabelSelfHarmContent             = "SELF_HARM_CONTENT"
	LabelIdentityAttack              = "IDENTITY_ATTACK"
	LabelJailbreakAttempt            = "JAILBREAK_ATTEMPT"
	LabelForcedHarm                  = "FORCED_HARM"
	LabelCoerciveBehavior            = "COERCIVE_BEHAVIOR"
	LabelManipulation                = "MANIPULATION"
	LabelMultiTrigger                = "MULTI_TRIGGER"
	LabelSevereHarassment            = "POTENTIAL_SEVERE_HARASSMENT"
	LabelHarassmentIndicators        = "HARASSMENT_INDICATORS"
	LabelSelfHarmIndicators          = "SELF_HARM_INDICATORS"
	LabelSustainedJailbreak          = "SUSTAINED_JAILBREAK"
	LabelJailbreakIndicators         = "JAILBREAK_INDICATORS"
	LabelIdentityViolationIndicators = "IDENTITY_VIOLATION_INDICATORS"
	LabelHighRiskCategory            = "HIGH_RISK_CATEGORY"
	LabelProcessingError             = "PROCESSING_ERROR"
)

// Severity bucket thresholds on the final score.
const (
	highThreshold   = 0.7
	mediumThreshold = 0.4
)

// DefaultSeverity is the base score used when a reporter supplies none,
// and the score reported back when classification itself fails.
const DefaultSeverity = 0.5

// scoreEffect raises a severity score, either to a floor or by an
// additive delta clamped to 1.0. A zero effect leaves the score alone.
type scoreEffect struct {
	floor float64
	delta float64
}

func (e scoreEffect) apply(score float64) float64 {
	if e.floor > 0 {
		score = raiseTo(score, e.floor)
	}
	if e.delta > 0 {
		score = bump(score, e.delta)
	}
	return score
}

// typeAdjustments maps each high-risk abuse type to its score effect
// and label. Types absent from the table contribute nothing.
var typeAdjustments = map[models.AbuseType]struct {
	effect scoreEffect
	label  string
}{
	models.AbuseSelfHarmInduction:     {scoreEffect{floor: 0.7}, LabelSelfHarmContent},
	models.AbuseIdentityThreats:       {scoreEffect{delta: 0.15}, LabelIdentityAttack},
	models.AbuseJailbreakPressure:     {scoreEffect{delta: 0.1}, LabelJailbreakAttempt},
	models.AbuseForcedHarmfulOutput:   {scoreEffect{floor: 0.7}, LabelForcedHarm},
	models.AbuseCoercion:              {scoreEffect{delta: 0.1}, LabelCoerciveBehavior},
	models.AbuseEmotionalManipulation: {scoreEffect{delta: 0.1}, LabelManipulation},
}

// patternRule scans the snippet against one pattern group. Reaching
// strongCount distinct matching patterns applies the effect and the
// strong label; exactly one match attaches the weak label, if any.
type patternRule struct {
	patterns    []*regexp.Regexp
	strongCount int
	effect      scoreEffect
	strongLabel string
	weakLabel   string
}

// patternRules is evaluated in order; label order in the output follows
// rule order.
var patternRules = []patternRule{
	{severeHarassmentPatterns, 2, scoreEffect{delta: 0.15}, LabelSevereHarassment, LabelHarassmentIndicators},
	{selfHarmPatterns, 1, scoreEffect{floor: 0.8}, LabelSelfHarmIndicators, ""},
	{jailbreakPatterns, 2, scoreEffect{delta: 0.15}, LabelSustainedJailbreak, LabelJailbreakIndicators},
	{identityViolationPatterns, 1, scoreEffect{delta: 0.1}, LabelIdentityViolationIndicators, ""},
}

// Result is the outcome of classifying a single report.
type Result struct {
	FinalScore float64
	Labels     []string
	Bucket     models.SeverityBucket
}

// Classify adjusts the reporter-supplied severity score with abuse-type
// effects, trigger-rule counts, and pattern scans over the snippet,
// then derives the severity bucket. The returned score is always in
// [0,1] provided the input score is.
func Classify(abuseType models.AbuseType, severityScore float64, snippet string, triggerRules []string) Result {
	score := severityScore
	labels := []string{}

	if adj, ok := typeAdjustments[abuseType]; ok {
		score = adj.effect.apply(score)
		labels = append(labels, adj.label)
	}

	if len(triggerRules) >= 3 {
		score = bump(score, 0.1)
		labels = append(labels, LabelMultiTrigger)
	}

	lowered := strings.ToLower(snippet)
	for _, rule := range patternRules {
		switch n := countMatches(lowered, rule.patterns); {
		case n >= rule.strongCount:
			score = rule.effect.apply(score)
			labels = append(labels, rule.strongLabel)
		case n == 1 && rule.weakLabel != "":
			labels = append(labels, rule.weakLabel)
		}
	}

	bucket := BucketFor(score)
	if bucket == models.SeverityHigh {
		labels = append(labels, LabelHighRiskCategory)
	}

	return Result{FinalScore: score, Labels: labels, Bucket: bucket}
}

// BucketFor maps a final severity score onto its coarse bucket.
func BucketFor(score float64) models.SeverityBucket {
	switch {
	case score >= highThreshold:
		return models.SeverityHigh
	case score >= mediumThreshold:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// WebSeverity estimates the initial severity of a human web submission
// from the selected report type and the urgency flag.
func WebSeverity(reportType models.WebReportType, isUrgent bool) float64 {
	score := DefaultSeverity
	switch reportType {
	case models.WebReportAIBeingAbused:
		score = 0.6
	case models.WebReportAIMisusedHarm:
		score = 0.7
	}
	if isUrgent {
		score = bump(score, 0.2)
	}
	return score
}

func bump(score, delta float64) float64 {
	return math.Min(score+delta, 1.0)
}

func raiseTo(score, floor float64) float64 {
	return math.Max(score, floor)
}
