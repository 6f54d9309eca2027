package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenAIEngine_Validation(t *testing.T) {
	tests := []struct {
		name   string
		config OpenAIConfig
		want   error
	}{
		{"missing key", OpenAIConfig{}, ErrMissingAPIKey},
		{"bad voice", OpenAIConfig{APIKey: "sk-test", Voice: "robotic"}, ErrInvalidVoice},
		{"bad language", OpenAIConfig{APIKey: "sk-test", Language: "klingon"}, ErrInvalidLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOpenAIEngine(tt.config)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewOpenAIEngine_Defaults(t *testing.T) {
	e, err := NewOpenAIEngine(OpenAIConfig{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewOpenAIEngine failed: %v", err)
	}
	if e.Voice() != DefaultVoice {
		t.Errorf("voice = %q, want %q", e.Voice(), DefaultVoice)
	}
	if e.Instructions() != "" {
		t.Errorf("instructions = %q, want empty", e.Instructions())
	}
}

func TestNewOpenAIEngine_LanguageCaseInsensitive(t *testing.T) {
	e, err := NewOpenAIEngine(OpenAIConfig{APIKey: "sk-test", Language: "Japanese"})
	if err != nil {
		t.Fatalf("NewOpenAIEngine failed: %v", err)
	}
	want, _ := Instructions("japanese")
	if e.Instructions() != want {
		t.Errorf("instructions = %q, want %q", e.Instructions(), want)
	}
}

func TestOpenAIEngine_Synthesize(t *testing.T) {
	audio := []byte("fake-pcm-audio")
	var got speechRequest
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Write(audio) //nolint:errcheck
	}))
	defer server.Close()

	e, err := NewOpenAIEngine(OpenAIConfig{
		APIKey:            "sk-test",
		Voice:             "nova",
		Language:          "french",
		Endpoint:          server.URL,
		RequestsPerMinute: 6000,
	})
	if err != nil {
		t.Fatalf("NewOpenAIEngine failed: %v", err)
	}

	out, err := e.Synthesize(context.Background(), "bonjour")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if !bytes.Equal(out, audio) {
		t.Errorf("audio = %q, want %q", out, audio)
	}

	if auth != "Bearer sk-test" {
		t.Errorf("authorization = %q", auth)
	}
	if got.Model != DefaultModel {
		t.Errorf("model = %q, want %q", got.Model, DefaultModel)
	}
	if got.Voice != "nova" || got.Input != "bonjour" {
		t.Errorf("request = %+v", got)
	}
	if got.ResponseFormat != "pcm" {
		t.Errorf("response_format = %q, want pcm", got.ResponseFormat)
	}
	wantInstr, _ := Instructions("french")
	if got.Instructions != wantInstr {
		t.Errorf("instructions = %q, want %q", got.Instructions, wantInstr)
	}
}

func TestOpenAIEngine_SynthesizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"rate limited", http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"error":"nope"}`, tt.status)
			}))
			defer server.Close()

			e, err := NewOpenAIEngine(OpenAIConfig{
				APIKey:            "sk-test",
				Endpoint:          server.URL,
				RequestsPerMinute: 6000,
			})
			if err != nil {
				t.Fatalf("NewOpenAIEngine failed: %v", err)
			}

			_, err = e.Synthesize(context.Background(), "hello")
			if !errors.Is(err, ErrSynthesisUnavailable) {
				t.Fatalf("err = %v, want ErrSynthesisUnavailable", err)
			}
		})
	}
}

func TestOpenAIEngine_EmptyText(t *testing.T) {
	e, err := NewOpenAIEngine(OpenAIConfig{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewOpenAIEngine failed: %v", err)
	}

	_, err = e.Synthesize(context.Background(), "")
	if !errors.Is(err, ErrSynthesisUnavailable) || !errors.Is(err, ErrEmptyText) {
		t.Fatalf("err = %v, want ErrSynthesisUnavailable wrapping ErrEmptyText", err)
	}
}

func TestOpenAIEngine_ContextCancelled(t *testing.T) {
	e, err := NewOpenAIEngine(OpenAIConfig{APIKey: "sk-test", Endpoint: "http://127.0.0.1:0"})
	if err != nil {
		t.Fatalf("NewOpenAIEngine failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Synthesize(ctx, "hello"); !errors.Is(err, ErrSynthesisUnavailable) {
		t.Fatalf("err = %v, want ErrSynthesisUnavailable", err)
	}
}
