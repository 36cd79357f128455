package entities

// CheckState is the reconciliation state of a single exercise or quiz check.
type CheckState string

const (
	CheckIdle      CheckState = "idle"      // no check in flight
	CheckSubmitted CheckState = "submitted" // gateway attempt issued
	CheckConfirmed CheckState = "confirmed" // verdict taken from the server
	CheckFallback  CheckState = "fallback"  // verdict computed locally
	CheckRecorded  CheckState = "recorded"  // progress mutated exactly once
)

// VerdictSource tells where a verdict came from.
type VerdictSource string

const (
	SourceRemote VerdictSource = "remote"
	SourceLocal  VerdictSource = "local"
)

// SourceFor maps a terminal verdict state to its source.
func SourceFor(state CheckState) VerdictSource {
	if state == CheckFallback {
		return SourceLocal
	}
	return SourceRemote
}
