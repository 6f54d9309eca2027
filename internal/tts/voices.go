package tts

import "sort"

// Voices available from the OpenAI speech API.
var AvailableVoices = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer", "coral"}

const (
	// DefaultVoice is used when no voice is configured.
	DefaultVoice = "onyx"

	// DefaultModel is the speech model used for synthesis.
	DefaultModel = "gpt-4o-mini-tts"
)

// languageInstructions tells the model how to read the text, phrased in
// the target language where possible. The instruction text itself is part
// of the cache identity, not just the language name.
var languageInstructions = map[string]string{
	"english":    "Read this text in English.",
	"japanese":   "この文章を日本語で読んでください。",
	"chinese":    "请用中文阅读这段文字。",
	"korean":     "이 텍스트를 한국어로 읽어주세요.",
	"spanish":    "Lee este texto en español.",
	"french":     "Lisez ce texte en français.",
	"german":     "Lesen Sie diesen Text auf Deutsch.",
	"italian":    "Leggi questo testo in italiano.",
	"russian":    "Прочитайте этот текст на русском языке.",
	"portuguese": "Leia este texto em português.",
	"arabic":     "اقرأ هذا النص باللغة العربية.",
	"hindi":      "इस पाठ को हिंदी में पढ़ें।",
	"thai":       "อ่านข้อความนี้เป็นภาษาไทย",
	"vietnamese": "Đọc văn bản này bằng tiếng Việt.",
}

// ValidVoice reports whether the voice is in the known voice list.
func ValidVoice(voice string) bool {
	for _, v := range AvailableVoices {
		if v == voice {
			return true
		}
	}
	return false
}

// Instructions returns the reading instruction for a language key
// (lowercased language name). The second result is false for languages
// without an entry.
func Instructions(language string) (string, bool) {
	s, ok := languageInstructions[language]
	return s, ok
}

// Languages returns the supported language keys in sorted order.
func Languages() []string {
	keys := make([]string, 0, len(languageInstructions))
	for k := range languageInstructions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
