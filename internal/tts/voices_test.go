package tts

import (
	"sort"
	"testing"
)

func TestValidVoice(t *testing.T) {
	for _, v := range AvailableVoices {
		if !ValidVoice(v) {
			t.Errorf("voice %q should be valid", v)
		}
	}
	if ValidVoice("robotic") {
		t.Error("unknown voice accepted")
	}
	if ValidVoice("") {
		t.Error("empty voice accepted")
	}
}

func TestInstructions(t *testing.T) {
	s, ok := Instructions("french")
	if !ok || s == "" {
		t.Fatalf("french instructions missing: %q %v", s, ok)
	}

	if _, ok := Instructions("klingon"); ok {
		t.Error("unknown language accepted")
	}

	// Lookup is by lowercase key; callers normalize.
	if _, ok := Instructions("French"); ok {
		t.Error("lookup should not fold case itself")
	}
}

func TestLanguages_Sorted(t *testing.T) {
	langs := Languages()
	if len(langs) == 0 {
		t.Fatal("no languages")
	}
	if !sort.StringsAreSorted(langs) {
		t.Errorf("languages not sorted: %v", langs)
	}
	for _, l := range langs {
		if _, ok := Instructions(l); !ok {
			t.Errorf("listed language %q has no instructions", l)
		}
	}
}
