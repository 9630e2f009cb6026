// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package search

import (
	"strings"
	"unicode"

	"github.com/inkwell-platform/contentcore/internal/platform/embedding"
)

// isCJK reports whether r falls in one of the common CJK ideograph ranges.
func isCJK(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	case r >= 0x3400 && r <= 0x4DBF: // CJK Extension A
		return true
	case r >= 0xF900 && r <= 0xFAFF: // CJK Compatibility Ideographs
		return true
	case r >= 0x3040 && r <= 0x30FF: // Hiragana + Katakana
		return true
	default:
		return false
	}
}

// DetectLanguage heuristically classifies query text as Chinese or English
// by the share of CJK-range characters among all letters. Any non-trivial
// CJK presence selects zh; otherwise en.
func DetectLanguage(text string) embedding.Lang {
	var cjk, letters int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if isCJK(r) {
			cjk++
		}
	}
	if letters == 0 {
		return embedding.LangEN
	}
	if float64(cjk)/float64(letters) > 0.2 {
		return embedding.LangZH
	}
	return embedding.LangEN
}

// otherLang returns the cross-language fallback counterpart.
func otherLang(lang embedding.Lang) embedding.Lang {
	if lang == embedding.LangZH {
		return embedding.LangEN
	}
	return embedding.LangZH
}

// Tokenize splits text into case-folded, de-duplicated tokens: alphanumeric
// runs, plus every single character and every 2- and 3-character n-gram of
// each CJK run. Used for lexical-overlap scoring, never for storage.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	var tokens []string

	add := func(tok string) {
		if tok == "" {
			return
		}
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}

	var run []rune
	var cjkRun []rune

	flushRun := func() {
		if len(run) > 0 {
			add(string(run))
			run = run[:0]
		}
	}
	flushCJK := func() {
		if len(cjkRun) == 0 {
			return
		}
		for _, r := range cjkRun {
			add(string(r))
		}
		for n := 2; n <= 3; n++ {
			if len(cjkRun) < n {
				continue
			}
			for i := 0; i+n <= len(cjkRun); i++ {
				add(string(cjkRun[i : i+n]))
			}
		}
		cjkRun = cjkRun[:0]
	}

	for _, r := range lower {
		switch {
		case isCJK(r):
			flushRun()
			cjkRun = append(cjkRun, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			flushCJK()
			run = append(run, r)
		default:
			flushRun()
			flushCJK()
		}
	}
	flushRun()
	flushCJK()

	return tokens
}

// lexicalOverlapRatio is |tokens(query) ∩ tokens(candidate)| / |tokens(query)|.
func lexicalOverlapRatio(queryTokens []string, candidate string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}
	candidateSet := make(map[string]struct{})
	for _, t := range Tokenize(candidate) {
		candidateSet[t] = struct{}{}
	}
	var hits int
	for _, t := range queryTokens {
		if _, ok := candidateSet[t]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(queryTokens))
}
