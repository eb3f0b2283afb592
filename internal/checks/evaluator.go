package checks

import (
	"context"

	"pipeaudit/internal/gateway"
)

// Evaluator holds the detection logic for one catalog check.
//
// Evaluate receives a gateway scoped to the target repository and the
// catalog entry it is scored against. Implementations are read-only and
// keep no state between calls: inputs are a snapshot, the Result is final.
// A gateway error that is not itself the audited signal must surface as
// StatusSkip, never as StatusFail.
type Evaluator interface {
	ID() ID
	Evaluate(ctx context.Context, gw gateway.Gateway, repo gateway.RepoRef, check Check) Result
}
