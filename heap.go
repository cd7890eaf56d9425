package lisp

// heap is the per-interpreter allocator and cell registry described in
// spec §4.2. Every cell the interpreter ever mints is linked into this
// singly-linked list so the collector's sweep can find it; the list is
// walked front-to-back and unmarked cells are unlinked in place.
//
// Folding this into a value owned by *Interpreter (rather than a
// package-level global, as the distilled spec's source does) is the
// design-notes change called for in spec §9: multiple interpreters can
// now coexist in one process, each with its own heap and its own
// singletons.
type heap struct {
	head  *Cell
	count int
	cap   int
}

func newHeap(cap int) *heap {
	return &heap{cap: cap}
}

// register links c into the heap and bumps the live-cell count. The
// caller (Mkobj) is responsible for diagnosing an exceeded cap — the
// registry itself just tracks the count, the way a free-list allocator
// tracks usage without deciding what to do about exhaustion.
func (h *heap) register(c *Cell) {
	c.next = h.head
	h.head = c
	h.count++
}

// alloc and calloc stand in for spec §4.2's raw byte-buffer allocator.
// Go's make() already zeroes its result, so calloc is just alloc with a
// multiplied size. Nothing in the package calls them: the reader and
// the primitives grow their scratch buffers with append directly. A Go
// make() call cannot itself be made to fail gracefully, so these never
// diagnose — the enforced cap lives on cell allocation instead, where
// the heap registry can count outstanding objects.
func (ip *Interpreter) alloc(n int) []byte    { return make([]byte, n) }
func (ip *Interpreter) calloc(k, n int) []byte { return make([]byte, k*n) }
