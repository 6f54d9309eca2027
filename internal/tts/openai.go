package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

const (
	defaultEndpoint = "https://api.openai.com/v1/audio/speech"

	// SampleRate is the sample rate of synthesized audio. The API's raw
	// PCM output is 24 kHz, 16-bit signed little-endian, mono.
	SampleRate = 24000

	// Channels is the channel count of synthesized audio.
	Channels = 1

	// maxTextSize is the API's input limit per request.
	maxTextSize = 4096
)

// OpenAIConfig holds configuration for the OpenAI speech engine.
type OpenAIConfig struct {
	// APIKey is the bearer credential, usually from OPENAI_API_KEY.
	APIKey string

	// Voice to synthesize with - defaults to DefaultVoice.
	Voice string

	// Language selects a reading instruction, empty for none.
	Language string

	// Model - defaults to DefaultModel.
	Model string

	// Endpoint overrides the API URL (tests).
	Endpoint string

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client

	// RequestsPerMinute rate-limits synthesis calls (defaults to 50).
	RequestsPerMinute int

	// Timeout per synthesis request (defaults to 30s).
	Timeout time.Duration
}

// OpenAIEngine implements Synthesizer against the OpenAI speech endpoint.
type OpenAIEngine struct {
	apiKey       string
	voice        string
	model        string
	instructions string
	endpoint     string
	client       *http.Client
	timeout      time.Duration

	// Rate limiting to stay inside API quotas
	rateLimiter *rate.Limiter
}

// speechRequest is the JSON body of a synthesis call.
type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
	Instructions   string `json:"instructions,omitempty"`
}

// NewOpenAIEngine creates a new OpenAI speech engine.
func NewOpenAIEngine(config OpenAIConfig) (*OpenAIEngine, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if config.Voice == "" {
		config.Voice = DefaultVoice
	}
	if !ValidVoice(config.Voice) {
		return nil, fmt.Errorf("%q (choose from: %s): %w",
			config.Voice, strings.Join(AvailableVoices, ", "), ErrInvalidVoice)
	}

	var instructions string
	if config.Language != "" {
		var ok bool
		instructions, ok = Instructions(strings.ToLower(config.Language))
		if !ok {
			return nil, fmt.Errorf("%q (choose from: %s): %w",
				config.Language, strings.Join(Languages(), ", "), ErrInvalidLanguage)
		}
	}

	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Endpoint == "" {
		config.Endpoint = defaultEndpoint
	}
	if config.HTTPClient == nil {
		config.HTTPClient = http.DefaultClient
	}
	if config.RequestsPerMinute == 0 {
		config.RequestsPerMinute = 50
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &OpenAIEngine{
		apiKey:       config.APIKey,
		voice:        config.Voice,
		model:        config.Model,
		instructions: instructions,
		endpoint:     config.Endpoint,
		client:       config.HTTPClient,
		timeout:      config.Timeout,
		rateLimiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), 1),
	}, nil
}

// Voice returns the configured voice.
func (e *OpenAIEngine) Voice() string { return e.voice }

// Instructions returns the reading instruction derived from the
// configured language, or empty when none applies.
func (e *OpenAIEngine) Instructions() string { return e.instructions }

// Synthesize converts text to raw PCM audio via the speech endpoint.
// Every failure wraps ErrSynthesisUnavailable so the session can degrade
// to a text-only run.
func (e *OpenAIEngine) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisUnavailable, ErrEmptyText)
	}
	if len(text) > maxTextSize {
		return nil, fmt.Errorf("%w: text too long: %d characters (max %d)",
			ErrSynthesisUnavailable, len(text), maxTextSize)
	}

	if err := e.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait cancelled: %w", ErrSynthesisUnavailable, err)
	}

	body, err := json.Marshal(speechRequest{
		Model:          e.model,
		Input:          text,
		Voice:          e.voice,
		ResponseFormat: "pcm",
		Instructions:   e.instructions,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: unable to encode request: %w", ErrSynthesisUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: unable to build request: %w", ErrSynthesisUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	log.Debug("Requesting synthesis", "voice", e.voice, "model", e.model, "chars", len(text))

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		// The error body is small JSON; include a truncated copy.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("%w: authentication failed, check your API key", ErrSynthesisUnavailable)
		case http.StatusTooManyRequests:
			return nil, fmt.Errorf("%w: rate limited or quota exceeded: %s", ErrSynthesisUnavailable, detail)
		default:
			return nil, fmt.Errorf("%w: HTTP status %d: %s", ErrSynthesisUnavailable, resp.StatusCode, detail)
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read audio: %w", ErrSynthesisUnavailable, err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: API produced no audio", ErrSynthesisUnavailable)
	}

	return audio, nil
}

// Close releases resources held by the engine.
func (e *OpenAIEngine) Close() error { return nil }

// Ensure OpenAIEngine implements the Synthesizer interface
var _ Synthesizer = (*OpenAIEngine)(nil)
