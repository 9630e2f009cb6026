// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package search

import (
	"context"
	"math"
	"strings"

	"github.com/inkwell-platform/contentcore/internal/platform/embedding"
)

const (
	fastExcerptWindow    = 40
	enhancedSnippetMax   = 180
	enhancedCandidateMax = 24
	enhancedCandidateMin = 12
	lexicalOverlapWeight = 0.15
)

// FastExcerpt implements the default highlight path: a ±40-char window
// around the first case-insensitive match of any query token in content,
// else the same against summary, else a 180-char prefix of summary (or
// content if summary is empty).
func FastExcerpt(query, content, summary string) string {
	tokens := Tokenize(query)

	if idx, tok := firstMatch(content, tokens); idx >= 0 {
		return windowAround(content, idx, len(tok))
	}
	if idx, tok := firstMatch(summary, tokens); idx >= 0 {
		return windowAround(summary, idx, len(tok))
	}

	prefixSource := summary
	if prefixSource == "" {
		prefixSource = content
	}
	return prefix(prefixSource, enhancedSnippetMax)
}

func firstMatch(text string, tokens []string) (int, string) {
	if text == "" {
		return -1, ""
	}
	lower := strings.ToLower(text)
	bestIdx := -1
	var bestTok string
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		idx := strings.Index(lower, tok)
		if idx < 0 {
			continue
		}
		if bestIdx == -1 || idx < bestIdx {
			bestIdx = idx
			bestTok = tok
		}
	}
	return bestIdx, bestTok
}

func windowAround(text string, byteIdx, matchLen int) string {
	runes := []rune(text)
	// byteIdx was computed against a byte-indexed lowercase copy; for plain
	// ASCII/CJK BMP content (the platform's content is always UTF-8 text
	// without surrogate-heavy scripts) rune and byte offsets coincide
	// closely enough that re-deriving the rune index by scanning is safer
	// than trusting the byte offset directly.
	runeIdx := byteIndexToRuneIndex(text, byteIdx)
	matchRuneLen := byteIndexToRuneIndex(text[byteIdx:byteIdx+matchLen], matchLen)

	start := runeIdx - fastExcerptWindow
	if start < 0 {
		start = 0
	}
	end := runeIdx + matchRuneLen + fastExcerptWindow
	if end > len(runes) {
		end = len(runes)
	}

	before := string(runes[start:runeIdx])
	matched := string(runes[runeIdx : runeIdx+matchRuneLen])
	after := string(runes[runeIdx+matchRuneLen : end])

	return before + "<mark>" + matched + "</mark>" + after
}

func byteIndexToRuneIndex(text string, byteIdx int) int {
	count := 0
	for i := range text {
		if i >= byteIdx {
			return count
		}
		count++
	}
	return count
}

func prefix(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// splitCandidates breaks content into paragraph, then sentence-terminated
// snippets capped at enhancedSnippetMax chars, discarding anything shorter
// than enhancedCandidateMin, bounded to enhancedCandidateMax candidates.
func splitCandidates(content string) []string {
	var out []string
	paragraphs := strings.Split(content, "\n\n")
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		for _, sentence := range splitSentences(para) {
			sentence = strings.TrimSpace(sentence)
			if len([]rune(sentence)) < enhancedCandidateMin {
				continue
			}
			out = append(out, prefix(sentence, enhancedSnippetMax))
			if len(out) >= enhancedCandidateMax {
				return out
			}
		}
	}
	return out
}

func splitSentences(text string) []string {
	var out []string
	var cur strings.Builder
	for _, r := range text {
		cur.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '。' || r == '！' || r == '？' {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// EnhancedHighlight falls through to FastExcerpt when a lexical match
// exists; otherwise it embeds candidate snippets and scores each as
// cosine(q, candidate) + 0.15*lexical_overlap_ratio, returning the best,
// <mark>-wrapped around an overlapping token when one exists.
func EnhancedHighlight(ctx context.Context, embedder embedding.TextEmbedder, lang embedding.Lang, query, content, summary string) (string, error) {
	tokens := Tokenize(query)
	if idx, _ := firstMatch(content, tokens); idx >= 0 {
		return FastExcerpt(query, content, summary), nil
	}
	if idx, _ := firstMatch(summary, tokens); idx >= 0 {
		return FastExcerpt(query, content, summary), nil
	}

	candidates := splitCandidates(content)
	if len(candidates) == 0 {
		return FastExcerpt(query, content, summary), nil
	}

	queryVec, err := embedder.EmbedText(ctx, lang, query)
	if err != nil {
		return FastExcerpt(query, content, summary), nil
	}

	var best string
	var bestScore float64
	found := false
	for _, candidate := range candidates {
		vec, err := embedder.EmbedText(ctx, lang, candidate)
		if err != nil {
			continue
		}
		score := cosineSimilarity(queryVec, vec) + lexicalOverlapWeight*lexicalOverlapRatio(tokens, candidate)
		if !found || score > bestScore {
			best, bestScore, found = candidate, score, true
		}
	}
	if !found {
		return FastExcerpt(query, content, summary), nil
	}

	if idx, tok := firstMatch(best, tokens); idx >= 0 {
		return windowAround(best, idx, len(tok)), nil
	}
	return best, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
