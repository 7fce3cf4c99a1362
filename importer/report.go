package importer

import "fmt"

// maxReportDetails bounds the per-row detail lists so a report over a
// thousand-row roster stays small. Rows past the bound are still counted.
const maxReportDetails = 10

type OutcomeKind string

const (
	OutcomeSuccess            OutcomeKind = "success"
	OutcomeDuplicate          OutcomeKind = "duplicate"
	OutcomeValidationFailure  OutcomeKind = "validation_failure"
	OutcomePersistenceFailure OutcomeKind = "persistence_failure"
)

// Outcome is the terminal result of one roster row.
type Outcome struct {
	Kind     OutcomeKind
	MemberID int64
	Reason   string
	Warnings []string
}

// Report is the batch-level aggregate returned to the caller. After Run
// returns it is never mutated again.
type Report struct {
	Total      int
	Success    int
	Failed     int
	Duplicates int
	// Errors and Warnings keep only the first maxReportDetails entries, in
	// input row order.
	Errors   []string
	Warnings []string
}

func (r *Report) record(row int, sourceFile string, outcome Outcome) {
	switch outcome.Kind {
	case OutcomeSuccess:
		r.Success++
	case OutcomeDuplicate:
		r.Duplicates++
		r.addError(row, sourceFile, "duplicate: "+outcome.Reason)
	default:
		r.Failed++
		r.addError(row, sourceFile, outcome.Reason)
	}

	for _, warning := range outcome.Warnings {
		if len(r.Warnings) < maxReportDetails {
			r.Warnings = append(r.Warnings, fmt.Sprintf("row %d (%s): %s", row, sourceFile, warning))
		}
	}
}

func (r *Report) addError(row int, sourceFile, reason string) {
	if len(r.Errors) < maxReportDetails {
		r.Errors = append(r.Errors, fmt.Sprintf("row %d (%s): %s", row, sourceFile, reason))
	}
}
