// Copyright (c) 2026 Inkwell Platform. All rights reserved.

// Package embedding declares the pure-function boundary to the text and
// image embedding models. The models themselves are external collaborators
// — this package only fixes their call shape and declared output
// dimensions so the search engine can depend on an interface instead of a
// concrete model.
package embedding

import "context"

// Lang selects which bilingual text model embeds a string.
type Lang string

const (
	LangEN Lang = "en"
	LangZH Lang = "zh"
)

// TextDim is the fixed output width of both text models, matching the
// vector_en/vector_zh column declarations.
const TextDim = 768

// ImageDim is the fixed output width of the image model.
const ImageDim = 768

// TextEmbedder embeds a string of text into a fixed-width vector for a
// given language model. Implementations are expected to be pure functions
// of their input: same text and language always produce the same vector.
type TextEmbedder interface {
	EmbedText(ctx context.Context, lang Lang, text string) ([]float32, error)
}

// ImageEmbedder embeds raw image bytes into the shared image vector space.
type ImageEmbedder interface {
	EmbedImage(ctx context.Context, data []byte) ([]float32, error)
}

// JointEmbedder additionally supports embedding text into the image vector
// space, enabling text-to-image search. Not every deployment configures a
// joint encoder; callers must check for it explicitly.
type JointEmbedder interface {
	ImageEmbedder
	EmbedTextForImageSearch(ctx context.Context, text string) ([]float32, error)
}
