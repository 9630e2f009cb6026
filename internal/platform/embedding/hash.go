// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package embedding

import (
	"context"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// HashEmbedder is a deterministic, dependency-free stand-in for the real
// bilingual text and image models. It satisfies [TextEmbedder] and
// [ImageEmbedder] with pure functions of their input — same bytes in, same
// vector out — which is all the search engine's contract requires; the
// real models are external collaborators out of scope for this module (see
// package doc). It is wired as the default embedder so the server and
// sf-cli are runnable without a model sidecar configured.
type HashEmbedder struct{}

// NewHashEmbedder builds a [HashEmbedder].
func NewHashEmbedder() *HashEmbedder { return &HashEmbedder{} }

// EmbedText implements [TextEmbedder].
func (HashEmbedder) EmbedText(_ context.Context, lang Lang, text string) ([]float32, error) {
	return hashVector(string(lang)+"|"+text, TextDim), nil
}

// EmbedImage implements [ImageEmbedder].
func (HashEmbedder) EmbedImage(_ context.Context, data []byte) ([]float32, error) {
	return hashVectorBytes(data, ImageDim), nil
}

// EmbedTextForImageSearch implements [JointEmbedder] so text-to-image search
// has a working default path too.
func (HashEmbedder) EmbedTextForImageSearch(_ context.Context, text string) ([]float32, error) {
	return hashVector("joint|"+text, ImageDim), nil
}

// hashVector expands a seed string into dim float32s in [-1, 1) by hashing
// progressively salted variants of the seed. Not a semantic embedding —
// only useful for exercising the ANN/cosine code paths deterministically.
func hashVector(seed string, dim int) []float32 {
	return hashVectorBytes([]byte(seed), dim)
}

func hashVectorBytes(seed []byte, dim int) []float32 {
	out := make([]float32, dim)
	var salt [8]byte
	for i := 0; i < dim; i++ {
		binary.LittleEndian.PutUint64(salt[:], uint64(i))
		h := xxhash.Sum64(append(salt[:], seed...))
		out[i] = (float32(h%2_000_003)/1_000_001.5 - 1)
	}
	return out
}
