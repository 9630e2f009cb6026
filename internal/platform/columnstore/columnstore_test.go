package columnstore

import "testing"

func TestNonKeyColumns(t *testing.T) {
	all := []string{"id", "title", "body", "updated_at"}
	got := nonKeyColumns(all, []string{"id"})

	want := []string{"title", "body", "updated_at"}
	if len(got) != len(want) {
		t.Fatalf("nonKeyColumns() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("nonKeyColumns()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSanitizeIdent(t *testing.T) {
	if got := sanitizeIdent("content.article"); got != "content_article" {
		t.Fatalf("sanitizeIdent() = %q, want %q", got, "content_article")
	}
}
