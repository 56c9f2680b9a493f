package lisp

import "fmt"

// Heap is the registry of every LVal allocated by a Runtime.  Values are
// reference counted and unreferenced values are freed by Collect.
//
// Reference counting only frees acyclic structures.  LLambda values do not
// release their formals and body when they are freed, so those values stay
// registered for the lifetime of the Heap.
type Heap struct {
	vals   []*LVal
	lastid uint64
}

// HeapStats summarizes the state of a Heap.
type HeapStats struct {
	Live      int
	Allocated uint64
	ByType    map[LValType]int
}

func newHeap() *Heap {
	return &Heap{
		vals: make([]*LVal, 0, 100),
	}
}

// Len returns the number of registered values.
func (h *Heap) Len() int {
	return len(h.vals)
}

// Stats returns a summary of live values.
func (h *Heap) Stats() HeapStats {
	stats := HeapStats{
		Live:      len(h.vals),
		Allocated: h.lastid,
		ByType:    make(map[LValType]int),
	}
	for _, v := range h.vals {
		stats.ByType[v.Type]++
	}
	return stats
}

func (h *Heap) alloc(v *LVal) *LVal {
	h.lastid++
	v.id = h.lastid
	v.Refs = 0
	h.vals = append(h.vals, v)
	return v
}

// Retain records a counted reference to v.  Retain does nothing if v is the
// empty value.
func Retain(v *LVal) {
	if v == nil {
		return
	}
	if v.freed {
		panic(fmt.Sprintf("retain of freed %s value %#x", v.Type, v.id))
	}
	v.Refs++
}

// Release drops a counted reference to v.  The value is not freed until the
// next call to Heap.Collect.
func Release(v *LVal) {
	if v == nil {
		return
	}
	if v.Refs <= 0 {
		panic(fmt.Sprintf("release of unreferenced %s value %#x", v.Type, v.id))
	}
	v.Refs--
}

// free releases the values directly owned by v.  Only one level is released;
// Collect picks up children whose count drops to zero on its next pass.
func free(v *LVal) {
	switch v.Type {
	case LPair:
		Release(v.Car)
		Release(v.Cdr)
	case LString:
		v.Str = ""
	}
	v.freed = true
}

// Collect frees every registered value with a reference count of zero,
// repeating until a pass frees nothing.  Collect returns the number of values
// freed.
//
// Collect must only be called between top-level evaluations.  Any value held
// without a counted reference may be freed.
func (h *Heap) Collect() int {
	total := 0
	for {
		freed := 0
		for i, v := range h.vals {
			if v != nil && v.Refs == 0 {
				free(v)
				h.vals[i] = nil
				freed++
			}
		}
		if freed == 0 {
			break
		}
		total += freed
	}
	if total > 0 {
		live := h.vals[:0]
		for _, v := range h.vals {
			if v != nil {
				live = append(live, v)
			}
		}
		for i := len(live); i < len(h.vals); i++ {
			h.vals[i] = nil
		}
		h.vals = live
	}
	return total
}
