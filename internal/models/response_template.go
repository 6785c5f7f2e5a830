package models

// ResponseTemplate is one canned-response resolution rule. A nil AbuseType
// makes the template a baseline band that applies to every abuse type;
// type-specific templates override the baseline for their type. Ranges are
// inclusive on both ends and may overlap; resolution order disambiguates.
type ResponseTemplate struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TemplateKey string     `gorm:"size:64;not null;uniqueIndex" json:"template_key"`
	AbuseType   *AbuseType `gorm:"size:40;index" json:"abuse_type,omitempty"`
	MinSeverity float64    `gorm:"not null;default:0" json:"min_severity"`
	MaxSeverity float64    `gorm:"not null;default:1" json:"max_severity"`
	Body        string     `gorm:"type:text;not null" json:"body"`
}

// Matches reports whether score falls inside the template's inclusive range.
func (t ResponseTemplate) Matches(score float64) bool {
	return t.MinSeverity <= score && score <= t.MaxSeverity
}
