package dispatch

import "fmt"

// RunAll executes the given tasks concurrently, one goroutine per task,
// and returns one Result per task in completion order.
//
// Failure isolation: a task that returns an error or panics yields a
// Result with OK=false and a message derived from the failure; it never
// aborts sibling tasks or surfaces to the caller. Every submitted task
// name appears in the results exactly once.
//
// There is no mid-batch cancellation: once dispatched, all tasks run to
// completion. Task counts equal provider counts, so no pool cap is
// applied here.
func RunAll(tasks []Task) []Result {
	if len(tasks) == 0 {
		return []Result{}
	}

	ch := make(chan Result, len(tasks))
	for _, task := range tasks {
		go func(task Task) {
			ch <- run(task)
		}(task)
	}

	results := make([]Result, 0, len(tasks))
	for range tasks {
		results = append(results, <-ch)
	}
	return results
}

// run invokes a single task, converting errors and panics into a failed
// Result.
func run(t Task) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Name: t.Name, OK: false, Message: fmt.Sprintf("panic: %v", r)}
		}
	}()

	msg, err := t.Run()
	if err != nil {
		return Result{Name: t.Name, OK: false, Message: err.Error()}
	}
	return Result{Name: t.Name, OK: true, Message: msg}
}
