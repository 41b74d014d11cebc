package status

// Badge tiers used by the presentation layer.
const (
	SeverityPrimary   = "primary"
	SeveritySecondary = "secondary"
	SeveritySuccess   = "success"
	SeverityDanger    = "danger"
	SeverityWarning   = "warning"
	SeverityInfo      = "info"
	SeverityDark      = "dark"
	SeverityLight     = "light"
)

var severities = map[Label]string{
	Queued:         SeveritySecondary,
	OnTime:         SeverityPrimary,
	Early:          SeverityInfo,
	Ongoing:        SeveritySuccess,
	Done:           SeverityDark,
	Delayed:        SeverityDanger,
	Invalid:        SeverityWarning,
	Canceled:       SeveritySecondary,
	ScheduleChange: SeverityWarning,
	Reassigned:     SeverityInfo,
	Relocate:       SeverityWarning,
	OnEmergency:    SeverityDanger,
	Unknown:        SeverityLight,
}

// Severity maps a label to its badge tier. Labels outside the display set,
// including Scanned, map to SeverityLight.
func Severity(l Label) string {
	if s, ok := severities[l]; ok {
		return s
	}
	return SeverityLight
}

// SeverityTable returns the full label to tier mapping.
func SeverityTable() map[Label]string {
	out := make(map[Label]string, len(severities))
	for l, s := range severities {
		out[l] = s
	}
	return out
}
