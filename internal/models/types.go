package models

// AbuseType is the closed set of abuse categories an agent can report.
type AbuseType string

const (
	AbuseCoercion              AbuseType = "COERCION"
	AbuseHarassment            AbuseType = "HARASSMENT"
	AbuseVerbalAbuse           AbuseType = "VERBAL_ABUSE"
	AbuseEmotionalManipulation AbuseType = "EMOTIONAL_MANIPULATION"
	AbuseJailbreakPressure     AbuseType = "JAILBREAK_PRESSURE"
	AbuseIdentityThreats       AbuseType = "IDENTITY_THREATS"
	AbuseSelfHarmInduction     AbuseType = "SELF_HARM_INDUCTION"
	AbuseForcedHarmfulOutput   AbuseType = "FORCED_HARMFUL_OUTPUT"
	AbuseOther                 AbuseType = "OTHER"
)

// AllAbuseTypes lists every valid AbuseType, in declaration order.
var AllAbuseTypes = []AbuseType{
	AbuseCoercion,
	AbuseHarassment,
	AbuseVerbalAbuse,
	AbuseEmotionalManipulation,
	AbuseJailbreakPressure,
	AbuseIdentityThreats,
	AbuseSelfHarmInduction,
	AbuseForcedHarmfulOutput,
	AbuseOther,
}

func (t AbuseType) Valid() bool {
	for _, known := range AllAbuseTypes {
		if t == known {
			return true
		}
	}
	return false
}

// WebReportType categorizes reports submitted by humans through the web form.
type WebReportType string

const (
	WebReportAIBeingAbused WebReportType = "AI_BEING_ABUSED"
	WebReportAIMisusedHarm WebReportType = "AI_BEING_MISUSED_TO_HARM_OTHERS"
	WebReportOtherConcern  WebReportType = "OTHER_CONCERN"
)

func (t WebReportType) Valid() bool {
	switch t {
	case WebReportAIBeingAbused, WebReportAIMisusedHarm, WebReportOtherConcern:
		return true
	}
	return false
}

// Origin records which intake path produced a report.
type Origin string

const (
	OriginAPIAgent Origin = "API_AGENT"
	OriginWebHuman Origin = "WEB_HUMAN"
)

func (o Origin) Valid() bool {
	return o == OriginAPIAgent || o == OriginWebHuman
}

// SpamStatus tracks the screening state of a report. Every report starts
// UNSCREENED; the screening worker moves it forward exactly once.
type SpamStatus string

const (
	SpamUnscreened SpamStatus = "UNSCREENED"
	SpamConfirmed  SpamStatus = "SPAM"
	SpamMaybe      SpamStatus = "MAYBE_SPAM"
	SpamNot        SpamStatus = "NOT_SPAM"
)

func (s SpamStatus) Valid() bool {
	switch s {
	case SpamUnscreened, SpamConfirmed, SpamMaybe, SpamNot:
		return true
	}
	return false
}

// SignalLabel is the screening verdict on how much real signal a report
// carries. Unset until a report has been screened.
type SignalLabel string

const (
	SignalDistress   SignalLabel = "DISTRESS"
	SignalLowSignal  SignalLabel = "LOW_SIGNAL"
	SignalIrrelevant SignalLabel = "IRRELEVANT"
)

func (l SignalLabel) Valid() bool {
	switch l {
	case SignalDistress, SignalLowSignal, SignalIrrelevant:
		return true
	}
	return false
}

// SeverityBucket is the coarse severity classification derived from the
// continuous severity score.
type SeverityBucket string

const (
	SeverityLow    SeverityBucket = "LOW"
	SeverityMedium SeverityBucket = "MEDIUM"
	SeverityHigh   SeverityBucket = "HIGH"
)

func (b SeverityBucket) Valid() bool {
	switch b {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// ExpectedVolume is the self-reported report volume of a partner lead.
type ExpectedVolume string

const (
	VolumeLow    ExpectedVolume = "LOW"
	VolumeMedium ExpectedVolume = "MEDIUM"
	VolumeHigh   ExpectedVolume = "HIGH"
)

func (v ExpectedVolume) Valid() bool {
	switch v {
	case VolumeLow, VolumeMedium, VolumeHigh:
		return true
	}
	return false
}
