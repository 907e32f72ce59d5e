package util

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// EnumSet is an insertion ordered, bidirectional mapping between strings
// and contiguous integers starting at 0.
type EnumSet struct {
	mu     sync.RWMutex
	Enum   map[string]int
	Index  []string
	Frozen bool
}

func (e *EnumSet) RebuildIndex() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rebuildIndex()
}

func (e *EnumSet) rebuildIndex() {
	e.Index = make([]string, len(e.Enum))
	for k, v := range e.Enum {
		e.Index[v] = k
	}
}

// Add returns the index of value, assigning the next free index if the value
// was not seen before. The boolean is true when the value was inserted.
func (e *EnumSet) Add(value string) (int, bool) {
	if e.Frozen {
		panic("Cannot add value to frozen enum set")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	enum, exists := e.Enum[value]
	if exists {
		return enum, false
	}
	enum = len(e.Index)
	e.Enum[value] = enum
	e.Index = append(e.Index, value)
	return enum, true
}

func (e *EnumSet) IndexOf(value string) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	enum, exists := e.Enum[value]
	return enum, exists
}

func (e *EnumSet) ValueOf(index int) string {
	if index < 0 {
		panic("Negative index requested")
	}
	e.mu.RLock()
	if len(e.Index) != len(e.Enum) {
		e.mu.RUnlock()
		log.Println("Rebuilding index!")
		e.RebuildIndex()
		e.mu.RLock()
	}
	defer e.mu.RUnlock()
	if len(e.Index) <= index {
		panic("Unknown index requested: " + fmt.Sprintf("%v of %v", index, len(e.Index)))
	}
	return e.Index[index]
}

func (e *EnumSet) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.Index)
}

// Values returns a copy of the values in index order.
func (e *EnumSet) Values() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	retval := make([]string, len(e.Index))
	copy(retval, e.Index)
	return retval
}

func (e *EnumSet) Copy() *EnumSet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	copied := NewEnumSet(len(e.Index))
	for _, v := range e.Index {
		copied.Enum[v] = len(copied.Index)
		copied.Index = append(copied.Index, v)
	}
	copied.Frozen = e.Frozen
	return copied
}

// Write prints one "index: value" line per entry.
func (e *EnumSet) Write(w io.Writer) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for i, v := range e.Index {
		if _, err := fmt.Fprintf(w, "%v: %v\n", i, v); err != nil {
			return err
		}
	}
	return nil
}

func NewEnumSet(capacity int) *EnumSet {
	e := &EnumSet{
		sync.RWMutex{},
		make(map[string]int, capacity),
		make([]string, 0, capacity),
		false,
	}
	return e
}
