package provlock

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/medley-sh/medley/internal/errors"
)

var nextTokenID atomic.Uint64

// Token is an opaque caller handle for the lock. Reentrant shared holds
// are tracked per token rather than per goroutine: Go deliberately offers
// no goroutine identity, so the logical caller carries its token through
// the call tree instead.
//
// A token must not be shared between concurrent callers. Each dispatched
// worker creates its own.
type Token struct {
	id uint64
}

// NewToken creates a fresh caller handle.
func NewToken() *Token {
	return &Token{id: nextTokenID.Add(1)}
}

// Lock is a reader-writer lock with support for lock escalation.
//
// In shared mode multiple callers hold the lock at once; in exclusive
// mode a single caller holds it alone. Shared acquisition is reentrant
// per token, and a token holding shared access can escalate to exclusive
// via WithExclusive without deadlocking against itself.
//
// Writers are protected from starvation: registering as a waiting writer
// blocks new readers from being admitted while existing readers drain.
type Lock struct {
	mu        sync.Mutex
	readersOK *sync.Cond
	writersOK *sync.Cond

	activeReaders  int
	activeWriters  int
	waitingWriters int

	// holds tracks shared hold counts per token (reentrancy).
	holds map[*Token]int
}

// New creates a Lock. One instance is constructed at startup and passed
// to every call site that coordinates on the console; the lock lives for
// the process lifetime.
func New() *Lock {
	l := &Lock{
		holds: make(map[*Token]int),
	}
	l.readersOK = sync.NewCond(&l.mu)
	l.writersOK = sync.NewCond(&l.mu)
	return l
}

// AcquireShared acquires the lock in shared mode for the given token,
// blocking while a writer is active or waiting. If the token already
// holds shared access the call succeeds immediately and only increments
// the token's hold count; it never blocks a caller against itself.
func (l *Lock) AcquireShared(tok *Token) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.holds[tok] > 0 {
		l.holds[tok]++
		return
	}

	for l.activeWriters > 0 || l.waitingWriters > 0 {
		l.readersOK.Wait()
	}

	l.activeReaders++
	l.holds[tok] = 1
}

// ReleaseShared releases one shared hold for the given token. When the
// token's hold count reaches zero it stops counting as an active reader,
// and the last departing reader wakes any blocked writers.
//
// Releasing a hold the token never acquired returns ErrLockState.
func (l *Lock) ReleaseShared(tok *Token) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.holds[tok] == 0 {
		return fmt.Errorf("%w: release of shared lock not held", errors.ErrLockState)
	}

	l.holds[tok]--
	if l.holds[tok] == 0 {
		delete(l.holds, tok)
		l.activeReaders--
		if l.activeReaders == 0 {
			l.writersOK.Broadcast()
		}
	}
	return nil
}

// AcquireExclusive acquires the lock in exclusive mode, blocking until
// all readers and any current writer have finished. While waiting, new
// readers are refused admission so a stream of readers cannot starve
// the writer.
//
// A caller that holds shared access must use WithExclusive instead;
// calling AcquireExclusive directly from a shared holder deadlocks on
// its own hold.
func (l *Lock) AcquireExclusive() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.waitingWriters++
	for l.activeReaders > 0 || l.activeWriters > 0 {
		l.writersOK.Wait()
	}
	l.waitingWriters--
	l.activeWriters = 1
}

// ReleaseExclusive releases the exclusive hold and wakes all waiting
// readers and writers. Releasing without an active writer returns
// ErrLockState.
func (l *Lock) ReleaseExclusive() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.activeWriters == 0 {
		return fmt.Errorf("%w: release of exclusive lock not held", errors.ErrLockState)
	}

	l.activeWriters = 0
	l.writersOK.Broadcast()
	l.readersOK.Broadcast()
	return nil
}

// WithShared runs fn while holding shared access for the given token.
// The hold is released on every exit path, including panics.
func (l *Lock) WithShared(tok *Token, fn func() error) error {
	l.AcquireShared(tok)
	defer func() { _ = l.ReleaseShared(tok) }()
	return fn()
}

// WithExclusive runs fn while holding exclusive access.
//
// If the token currently holds shared access, the lock escalates: the
// token's shared holds are fully released, exclusive access is acquired
// (waiting for other readers to drain), fn runs, exclusive is released,
// and the shared holds are reacquired to their prior count.
//
// Escalation is not atomic with respect to other callers: between the
// release of the shared holds and the exclusive acquisition, any other
// reader or writer may run and mutate shared state. Callers must treat
// the exclusive section as a full release-and-reacquire of all claims
// to consistency.
func (l *Lock) WithExclusive(tok *Token, fn func() error) error {
	l.mu.Lock()
	held := l.holds[tok]
	l.mu.Unlock()

	if held == 0 {
		return l.runExclusive(fn)
	}

	for i := 0; i < held; i++ {
		if err := l.ReleaseShared(tok); err != nil {
			return err
		}
	}
	// Restore the prior shared holds even if fn fails or panics.
	defer func() {
		for i := 0; i < held; i++ {
			l.AcquireShared(tok)
		}
	}()

	return l.runExclusive(fn)
}

func (l *Lock) runExclusive(fn func() error) error {
	l.AcquireExclusive()
	defer func() { _ = l.ReleaseExclusive() }()
	return fn()
}

// HoldCount returns the number of shared holds the token currently has.
func (l *Lock) HoldCount(tok *Token) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holds[tok]
}

// Readers returns the number of distinct tokens currently holding shared
// access.
func (l *Lock) Readers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.activeReaders
}

// WriterActive reports whether a caller currently holds exclusive access.
func (l *Lock) WriterActive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.activeWriters > 0
}
