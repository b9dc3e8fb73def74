// Package provlock provides the reader-writer lock that coordinates
// concurrent provider operations on the terminal.
//
// Providers normally run in parallel, each worker holding the lock in
// shared mode. A provider that needs the console to itself (for example
// an interactive prompt that would race with other providers' output)
// escalates to exclusive mode, pausing the others until it finishes.
//
// # Escalation
//
// A worker already holding shared access cannot simply acquire exclusive
// access: it would wait for the reader count to reach zero, which
// includes itself. [Lock.WithExclusive] instead records the worker's
// shared hold count, releases all of its holds, acquires exclusive
// access, runs the body, and restores the holds afterwards. The swap is
// not atomic; other readers and writers may run in the gap.
//
// # Caller Identity
//
// Reentrant shared holds are tracked per [Token] rather than per
// goroutine. Workers create a token at dispatch time and carry it either
// explicitly or via [NewContext], which lets provider code escalate with
// [Exclusive] using only the context it already receives.
//
// # Basic Usage
//
//	lock := provlock.New()
//	tok := provlock.NewToken()
//
//	err := lock.WithShared(tok, func() error {
//	    // runs concurrently with other shared holders
//	    return lock.WithExclusive(tok, func() error {
//	        // runs alone; shared holds restored afterwards
//	        return nil
//	    })
//	})
//
// # Blocking Semantics
//
// Acquisition blocks indefinitely; there are no timeouts and a blocked
// acquire cannot be cancelled. Lock misuse (releasing a hold that was
// never acquired) returns errors.ErrLockState.
package provlock
