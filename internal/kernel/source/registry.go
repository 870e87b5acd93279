package source

import "sync"

// UnitID is an explicit, exported identity for a compiled unit, combining a
// monotonically increasing sequence number with its origin tag. spec.md §9
// leaves open whether the reference's discarded identity computation
// (ExecutedSourceCollection._getId) was a bug or an intentional disable
// switch; this type resolves the question by making the lookup key
// first-class instead of derived from Go object identity, which is not
// stable across garbage collection.
type UnitID struct {
	Seq    uint64
	Origin OriginTag
}

// Registry is the SourceRegistry (spec.md C1): a mapping from UnitID to the
// exact source text that produced it. Entries are inserted only when a
// block is compiled — never for single interactive lines, which have no
// meaningful editor origin (spec.md §3) — and are never removed during a
// session; it is bounded only by session length and treated as best-effort
// auxiliary data.
type Registry struct {
	mu      sync.RWMutex
	entries map[UnitID]string
	nextSeq uint64
}

// NewRegistry creates an empty SourceRegistry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[UnitID]string)}
}

// NextID allocates a fresh UnitID for a unit compiled with the given origin.
// Callers store the returned ID alongside the CompiledUnit so both the
// Executor and the TracebackRewriter can refer to the same entry.
func (r *Registry) NextID(origin OriginTag) UnitID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSeq++
	return UnitID{Seq: r.nextSeq, Origin: origin}
}

// Store records the source text for a block submission. Never called for
// single-line interactive input (spec.md §3 SourceRegistry invariant).
func (r *Registry) Store(id UnitID, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = source
}

// Lookup returns the exact source text stored for id, if any.
func (r *Registry) Lookup(id UnitID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.entries[id]
	return s, ok
}

// Len reports how many units are currently registered (best-effort
// diagnostic only — the registry is never pruned during a session).
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
