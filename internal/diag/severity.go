package diag

// Severity orders diagnostics. A unit stops before its next pass once it
// holds a diagnostic that halts; lower severities only travel with the result.
type Severity uint8

const (
	SevInfo    Severity = iota // observations such as timings
	SevWarning                 // reported without failing the unit
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Halts reports whether a diagnostic of this severity fails the unit.
func (s Severity) Halts() bool { return s >= SevError }
