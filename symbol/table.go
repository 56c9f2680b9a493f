package symbol

import (
	"errors"
	"fmt"
	"sync"
)

// DefaultMaxLen is the default maximum length of a symbol name in bytes.
const DefaultMaxLen = 30

// ErrTooLong is returned when a symbol name exceeds the maximum length of a
// Table.
var ErrTooLong = errors.New("symbol too long")

// ErrEmpty is returned when interning the empty string.
var ErrEmpty = errors.New("empty symbol")

// An ID is a handle to an interned symbol.  The zero ID is never returned by
// a Table.
type ID uint32

// Table maps symbol names to IDs.  Interned names are never removed.
type Table struct {
	sync   sync.RWMutex
	maxLen int
	names  []string
	index  map[string]ID
}

// NewTable returns an empty Table that rejects names longer than maxLen.  If
// maxLen is not positive names of any length are accepted.
func NewTable(maxLen int) *Table {
	return &Table{
		maxLen: maxLen,
		names:  make([]string, 0, 100),
		index:  make(map[string]ID, 100),
	}
}

// MaxLen returns the maximum length of a name in t, or zero if the length is
// unbounded.
func (t *Table) MaxLen() int {
	if t.maxLen <= 0 {
		return 0
	}
	return t.maxLen
}

// Len returns the number of symbols interned in t.
func (t *Table) Len() int {
	t.sync.RLock()
	defer t.sync.RUnlock()
	return len(t.names)
}

// Intern inserts s into the table if it is not present and returns its ID.
func (t *Table) Intern(s string) (ID, error) {
	if s == "" {
		return 0, ErrEmpty
	}
	if t.maxLen > 0 && len(s) > t.maxLen {
		return 0, fmt.Errorf("%w: %q has length %d (maximum %d)", ErrTooLong, s, len(s), t.maxLen)
	}
	t.sync.Lock()
	defer t.sync.Unlock()
	if id, ok := t.index[s]; ok {
		return id, nil
	}
	t.names = append(t.names, s)
	id := ID(len(t.names))
	t.index[s] = id
	return id, nil
}

// Peek retrieves the ID of a symbol without interning it.  Peek returns true
// iff the symbol has been interned into the table.
func (t *Table) Peek(s string) (ID, bool) {
	t.sync.RLock()
	defer t.sync.RUnlock()
	id, ok := t.index[s]
	return id, ok
}

// Symbol returns the name associated with id.
func (t *Table) Symbol(id ID) (string, bool) {
	t.sync.RLock()
	defer t.sync.RUnlock()
	if id == 0 || int(id) > len(t.names) {
		return "", false
	}
	return t.names[id-1], true
}

const unknownFormat = "#<SYMBOL %#x>"

// String returns the name of id in table.  String otherwise returns a
// diagnostic string describing id.
func String(id ID, table *Table) string {
	s, ok := table.Symbol(id)
	if !ok {
		return fmt.Sprintf(unknownFormat, uint32(id))
	}
	return s
}
