package cache

import "testing"

func TestKey_ID_Deterministic(t *testing.T) {
	k := Key{Text: "bonjour", Voice: "onyx", Instructions: "Lisez ce texte en français."}

	if k.ID() != k.ID() {
		t.Fatal("identical keys must produce identical identifiers")
	}
	if len(k.ID()) != 32 {
		t.Fatalf("identifier length = %d, want 32 hex chars", len(k.ID()))
	}
}

func TestKey_ID_DistinctTuples(t *testing.T) {
	base := Key{Text: "hello", Voice: "onyx", Instructions: ""}

	variants := []Key{
		{Text: "hello!", Voice: "onyx", Instructions: ""},
		{Text: "hello", Voice: "nova", Instructions: ""},
		{Text: "hello", Voice: "onyx", Instructions: "Read this text in English."},
	}

	for _, v := range variants {
		if v.ID() == base.ID() {
			t.Errorf("key %+v collides with %+v", v, base)
		}
	}
}

func TestKey_ID_SeparatorSafety(t *testing.T) {
	// Field content containing the separator must not collide with a
	// shifted split of the same bytes.
	a := Key{Text: "a|b", Voice: "c", Instructions: ""}
	b := Key{Text: "a", Voice: "b|c", Instructions: ""}
	if a.ID() == b.ID() {
		t.Fatal("shifted field boundaries must not collide")
	}
}
