// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package task

import (
	"crypto/sha256"
	"encoding/hex"
)

// AuthorIdentity is the deterministic, anonymous publication identity
// derived from a commenter's fingerprint (spec §4.4).
type AuthorIdentity struct {
	Name       string
	AvatarSeed string
	Hash       string
}

// DeriveAuthorIdentity computes sha256(fingerprint + ":" + salt) and slices
// it into the published-comment author fields. It is deterministic per
// commenter, stable across sessions, and reveals nothing about the IP.
func DeriveAuthorIdentity(fingerprint, salt string) AuthorIdentity {
	sum := sha256.Sum256([]byte(fingerprint + ":" + salt))
	full := hex.EncodeToString(sum[:])
	return AuthorIdentity{
		Name:       "Reader-" + full[:6],
		AvatarSeed: full[:10],
		Hash:       full,
	}
}
