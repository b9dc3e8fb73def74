package dispatch

import "fmt"

// Task is an independent unit of work targeting one provider. Run
// returns a human-readable message on success. Tasks must not depend on
// each other's results.
type Task struct {
	// Name identifies the target provider; it is echoed into the Result
	// so callers can attribute outcomes regardless of completion order.
	Name string
	// Run performs the operation. A returned error marks the task failed;
	// it is captured, never propagated.
	Run func() (string, error)
}

// Result is the outcome of one dispatched task.
type Result struct {
	Name    string
	OK      bool
	Message string
}

// Summary classifies a batch of results.
type Summary struct {
	Total    int
	Failures int
	Message  string
}

// OK reports whether every task in the batch succeeded.
func (s Summary) OK() bool {
	return s.Failures == 0
}

// Summarize classifies a batch as fully successful or partially failed.
// Fully successful batches carry successMsg; otherwise partialMsg is
// annotated with the failure count.
func Summarize(results []Result, successMsg, partialMsg string) Summary {
	failures := 0
	for _, r := range results {
		if !r.OK {
			failures++
		}
	}

	msg := successMsg
	if failures > 0 {
		msg = fmt.Sprintf("%s (%d error(s))", partialMsg, failures)
	}

	return Summary{
		Total:    len(results),
		Failures: failures,
		Message:  msg,
	}
}
