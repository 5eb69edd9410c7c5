package api

import (
	"sync"

	"github.com/papercomputeco/engram/pkg/memory"
)

// Registry is the locked view of a memory registry shared by the HTTP and
// MCP surfaces. The memory core is single-threaded by design; this is the
// single mutual-exclusion boundary that serializes external callers.
type Registry interface {
	Learn(number, value int) error
	Rollback(number int) error
	Relearn(number int) error
	Check(number int) (string, error)
	Clone(number int) (int, error)
	Count() int
}

// lockedRegistry serializes all calls onto the wrapped registry.
type lockedRegistry struct {
	mu  sync.Mutex
	reg *memory.Registry[int]
}

func newLockedRegistry(reg *memory.Registry[int]) *lockedRegistry {
	return &lockedRegistry{reg: reg}
}

func (l *lockedRegistry) Learn(number, value int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Learn(number, value)
}

func (l *lockedRegistry) Rollback(number int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Rollback(number)
}

func (l *lockedRegistry) Relearn(number int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Relearn(number)
}

func (l *lockedRegistry) Check(number int) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Check(number)
}

func (l *lockedRegistry) Clone(number int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Clone(number)
}

func (l *lockedRegistry) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Count()
}
