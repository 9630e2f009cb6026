// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package profiler

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAccumulatesBySymbol(t *testing.T) {
	p := New(1)

	for i := 0; i < 5; i++ {
		p.Record(100)
	}

	top := p.Top(10)
	require.Len(t, top, 1)
	assert.Equal(t, int64(500), top[0].SizeBytes)

	stack, ok := p.Symbol(top[0].SymbolID)
	assert.True(t, ok)
	assert.Contains(t, stack, "goroutine")
}

func TestTopOrdersDescendingAndRespectsLimit(t *testing.T) {
	p := New(1)

	func() { p.Record(10) }()
	func() { func() { p.Record(1000) }() }()
	func() { func() { func() { p.Record(100) }() }() }()

	top := p.Top(2)
	require.Len(t, top, 2)
	assert.GreaterOrEqual(t, top[0].SizeBytes, top[1].SizeBytes)
}

func TestRecordIsConcurrencySafe(t *testing.T) {
	p := New(1)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				p.Record(1)
			}
		}()
	}
	wg.Wait()

	var total int64
	for _, s := range p.Top(0) {
		total += s.SizeBytes
	}
	assert.Equal(t, int64(1000), total)
}

func TestSamplingSkipsNonMultiples(t *testing.T) {
	p := New(10)
	for i := 0; i < 9; i++ {
		p.Record(1)
	}
	assert.Empty(t, p.Top(10))

	p.Record(1)
	assert.Len(t, p.Top(10), 1)
}
