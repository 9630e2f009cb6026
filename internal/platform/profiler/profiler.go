// Copyright (c) 2026 Inkwell Platform. All rights reserved.

/*
Package profiler is an optional sampling memory-allocation profiler.
Nothing in the rest of this module depends on it — it is wired in only by
whatever diagnostic endpoint or CLI command chooses to enable it (spec §9:
"This is an optional observability add-on; nothing else depends on it").

It captures a stack id for a sampled fraction of allocations and resolves
that id into a content-addressed symbol (the formatted call stack) on
demand. The symbol map and the sample counter are both concurrent-safe
[sync.Map]/atomic structures rather than a single global lock, so sampling
from many goroutines never serializes on one mutex.

# Reentrancy

A profiler hook that itself allocates (building the stack string, growing
the symbol map) can recurse into itself. Rather than a global lock — which
would deadlock on that recursion — each goroutine carries its own reentry
flag, keyed by goroutine id, so a nested allocation inside the hook is
observed and skipped instead of recursing forever.
*/
package profiler

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// Sample is one captured allocation event.
type Sample struct {
	SymbolID  string
	SizeBytes int64
}

// Profiler is a sampling allocation-stack recorder. The zero value is not
// usable; construct with [New].
type Profiler struct {
	everyN  int64
	counter atomic.Int64

	symbols   sync.Map // symbolID (string) -> stack text (string)
	reentrant sync.Map // goroutine id (int64) -> *int32 depth guard

	samples   sync.Map // symbolID (string) -> *atomic.Int64 (cumulative bytes)
	sampleIDs sync.Map // symbolID (string) -> struct{} (set of observed ids, for ranging)
}

// New builds a Profiler that records roughly 1-in-everyN allocations routed
// through [Profiler.Record]. everyN <= 0 is treated as 1 (always record).
func New(everyN int) *Profiler {
	if everyN <= 0 {
		everyN = 1
	}
	return &Profiler{everyN: int64(everyN)}
}

// Record is the allocation hook. Call it from wherever allocations are
// intercepted (a custom allocator shim, a GC finalizer, or a manual
// instrumentation point); it is cheap to call unconditionally — the
// sampling decision and the reentry guard both short-circuit before any
// real work happens.
func (p *Profiler) Record(sizeBytes int64) {
	n := p.counter.Add(1)
	if n%p.everyN != 0 {
		return
	}

	depth := p.reentryDepth()
	if *depth > 0 {
		// Already inside Record on this goroutine (e.g. the stack capture
		// below allocated and tripped the hook again). Skip it without
		// recording, rather than re-entering symbol resolution.
		return
	}
	*depth++
	defer func() { *depth-- }()

	stack := captureStack()
	symbolID := symbolID(stack)

	if _, loaded := p.symbols.LoadOrStore(symbolID, stack); !loaded {
		p.sampleIDs.Store(symbolID, struct{}{})
	}

	counter, _ := p.samples.LoadOrStore(symbolID, new(atomic.Int64))
	counter.(*atomic.Int64).Add(sizeBytes)
}

// Top returns the symbols with the highest cumulative recorded bytes,
// largest first, capped at limit entries.
func (p *Profiler) Top(limit int) []Sample {
	var all []Sample
	p.sampleIDs.Range(func(key, _ any) bool {
		id := key.(string)
		counter, ok := p.samples.Load(id)
		if !ok {
			return true
		}
		all = append(all, Sample{SymbolID: id, SizeBytes: counter.(*atomic.Int64).Load()})
		return true
	})

	// Simple insertion sort: profiler Top-K lists are small (dozens of
	// distinct call sites, not thousands), so an O(n^2) sort keeps this
	// dependency-free without mattering for latency.
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j].SizeBytes > all[j-1].SizeBytes; j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// Symbol resolves a symbol id back to its captured stack text, for display.
func (p *Profiler) Symbol(symbolID string) (string, bool) {
	v, ok := p.symbols.Load(symbolID)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// reentryDepth returns this goroutine's private depth counter, creating it
// on first use. Using goroutine id as the map key (rather than a single
// shared counter) is what makes this safe under concurrent sampling: two
// goroutines recording at once never see each other's depth.
func (p *Profiler) reentryDepth() *int32 {
	gid := goroutineID()
	v, _ := p.reentrant.LoadOrStore(gid, new(int32))
	return v.(*int32)
}

// captureStack renders the calling goroutine's stack, including the
// profiler's own frames.
func captureStack() string {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// symbolID content-addresses a stack string so identical stacks across
// many allocations collapse to one symbol table entry.
func symbolID(stack string) string {
	sum := sha256.Sum256([]byte(stack))
	return hex.EncodeToString(sum[:8])
}

// goroutineID extracts the numeric goroutine id from the current
// goroutine's stack header ("goroutine 123 [running]:..."). Go has no
// public API for this; parsing the header is the standard workaround used
// by allocation/CPU profilers that need a cheap per-goroutine key without
// threading one through every call site.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]

	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return 0
	}
	b = b[len(prefix):]

	end := bytes.IndexByte(b, ' ')
	if end < 0 {
		return 0
	}
	id, err := strconv.ParseInt(string(b[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
