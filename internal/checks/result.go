package checks

type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
	StatusWarn Status = "WARN"
	StatusSkip Status = "SKIP"
)

// Result is the verdict for one check against one repository.
// Points is the full weight for PASS, zero for FAIL and SKIP, and an
// evaluator-chosen value below the weight for WARN. Suggestion is set
// only on FAIL and WARN.
type Result struct {
	Check      Check  `json:"check"`
	Status     Status `json:"status"`
	Points     int    `json:"points_earned"`
	Detail     string `json:"detail,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Counted reports whether the result participates in score denominators.
// Skipped checks could not be evaluated and are excluded everywhere.
func (r Result) Counted() bool {
	return r.Status != StatusSkip
}

func Passed(check Check, detail string) Result {
	return Result{
		Check:  check,
		Status: StatusPass,
		Points: check.Weight,
		Detail: detail,
	}
}

func Failed(check Check, detail, suggestion string) Result {
	return Result{
		Check:      check,
		Status:     StatusFail,
		Detail:     detail,
		Suggestion: suggestion,
	}
}

// Warning awards partial credit. Points are clamped to [0, weight).
func Warning(check Check, points int, detail, suggestion string) Result {
	if points < 0 {
		points = 0
	}
	if points >= check.Weight && check.Weight > 0 {
		points = check.Weight - 1
	}
	return Result{
		Check:      check,
		Status:     StatusWarn,
		Points:     points,
		Detail:     detail,
		Suggestion: suggestion,
	}
}

func Skipped(check Check, reason string) Result {
	return Result{
		Check:  check,
		Status: StatusSkip,
		Detail: reason,
	}
}
