// Package screening runs the asynchronous second pass over stored
// reports: an external text classifier decides whether each report is
// spam, low signal, or genuine distress. The worker drains the
// UNSCREENED queue in FIFO batches and never blocks the intake path.
package screening

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aiabusehotline/hotline-core/internal/models"
)

// Verdict is the external classifier's judgment of one report.
type Verdict struct {
	SpamStatus     models.SpamStatus
	SignalLabel    models.SignalLabel
	SeverityBucket models.SeverityBucket
}

// ParseVerdict extracts a verdict from raw model output. Markdown code
// fences are tolerated. Fields that are missing or outside their closed
// enumeration fall back to the lenient defaults (MAYBE_SPAM,
// LOW_SIGNAL, MEDIUM); output that is not JSON at all is an error.
func ParseVerdict(content string) (Verdict, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) > 2 {
			content = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	var raw struct {
		SpamStatus     string `json:"spam_status"`
		SignalLabel    string `json:"signal_label"`
		SeverityBucket string `json:"severity_bucket"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return Verdict{}, fmt.Errorf("parse screening verdict: %w", err)
	}

	v := Verdict{
		SpamStatus:     models.SpamStatus(raw.SpamStatus),
		SignalLabel:    models.SignalLabel(raw.SignalLabel),
		SeverityBucket: models.SeverityBucket(raw.SeverityBucket),
	}
	if !v.SpamStatus.Valid() || v.SpamStatus == models.SpamUnscreened {
		v.SpamStatus = models.SpamMaybe
	}
	if !v.SignalLabel.Valid() {
		v.SignalLabel = models.SignalLowSignal
	}
	if !v.SeverityBucket.Valid() {
		v.SeverityBucket = models.SeverityMedium
	}
	return v, nil
}
