package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgnsrekt/flash/internal/tts"
	"github.com/spf13/viper"
)

// setVoiceFlags overrides the resolved voice options for one test and
// restores them afterwards.
func setVoiceFlags(t *testing.T, col int, voice, lang string) {
	t.Helper()
	oldCol, oldVoice, oldLang := voiceCol, voiceType, language
	voiceCol, voiceType, language = col, voice, lang
	t.Cleanup(func() {
		voiceCol, voiceType, language = oldCol, oldVoice, oldLang
	})
}

func TestSetupVoice_Disabled(t *testing.T) {
	setVoiceFlags(t, -1, tts.DefaultVoice, "")
	ui := newTerminalUI(strings.NewReader(""), &bytes.Buffer{})

	speaker, cleanup, err := setupVoice(ui, environment{})
	if err != nil {
		t.Fatalf("setupVoice failed: %v", err)
	}
	defer cleanup()
	if speaker != nil {
		t.Error("speaker created without a voice column")
	}
}

func TestSetupVoice_MissingKeyContinuesTextOnly(t *testing.T) {
	setVoiceFlags(t, 0, tts.DefaultVoice, "")
	var out bytes.Buffer
	ui := newTerminalUI(strings.NewReader("y\n"), &out)

	speaker, cleanup, err := setupVoice(ui, environment{})
	if err != nil {
		t.Fatalf("setupVoice failed: %v", err)
	}
	defer cleanup()

	if speaker != nil {
		t.Error("speaker created without a credential")
	}
	if !strings.Contains(out.String(), "Continue without voice?") {
		t.Errorf("output = %q, want a continue prompt", out.String())
	}
}

func TestSetupVoice_MissingKeyDeclined(t *testing.T) {
	setVoiceFlags(t, 0, tts.DefaultVoice, "")
	ui := newTerminalUI(strings.NewReader("n\n"), &bytes.Buffer{})

	if _, _, err := setupVoice(ui, environment{}); err == nil {
		t.Fatal("expected an error after declining to continue without voice")
	}
}

func TestSetupVoice_InvalidVoiceType(t *testing.T) {
	setVoiceFlags(t, 0, "robotic", "")
	ui := newTerminalUI(strings.NewReader("y\n"), &bytes.Buffer{})

	speaker, cleanup, err := setupVoice(ui, environment{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("setupVoice failed: %v", err)
	}
	defer cleanup()
	if speaker != nil {
		t.Error("speaker created with an unknown voice")
	}
}

func TestSetupVoice_InvalidLanguage(t *testing.T) {
	setVoiceFlags(t, 0, tts.DefaultVoice, "klingon")
	ui := newTerminalUI(strings.NewReader("y\n"), &bytes.Buffer{})

	speaker, cleanup, err := setupVoice(ui, environment{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("setupVoice failed: %v", err)
	}
	defer cleanup()
	if speaker != nil {
		t.Error("speaker created with an unknown language")
	}
}

func TestSetupVoice_NegativeVoiceColumn(t *testing.T) {
	setVoiceFlags(t, -3, tts.DefaultVoice, "")

	ui := newTerminalUI(strings.NewReader("y\n"), &bytes.Buffer{})
	speaker, cleanup, err := setupVoice(ui, environment{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("setupVoice failed: %v", err)
	}
	defer cleanup()
	if speaker != nil {
		t.Error("speaker created with a negative voice column")
	}

	ui = newTerminalUI(strings.NewReader("n\n"), &bytes.Buffer{})
	if _, _, err := setupVoice(ui, environment{APIKey: "sk-test"}); err == nil {
		t.Fatal("expected an error after declining to continue without voice")
	}
}

func TestValidateOptions_SkipsSubcommands(t *testing.T) {
	viper.Set("from", 1)
	viper.Set("to", 1)
	t.Cleanup(func() {
		viper.Set("from", 0)
		viper.Set("to", 1)
		shuffleCards, confirmMode, recursiveMode = false, false, false
		fromCol, toCol, voiceCol = 0, 1, -1
		voiceType, language = tts.DefaultVoice, ""
	})

	// The config command must stay reachable so the bad value can be fixed.
	if err := validateOptions(configCmd); err != nil {
		t.Errorf("config subcommand blocked by column validation: %v", err)
	}
	if err := validateOptions(cacheCmd); err != nil {
		t.Errorf("cache subcommand blocked by column validation: %v", err)
	}

	if err := validateOptions(rootCmd); err == nil {
		t.Error("quiz command accepted equal question and answer columns")
	}
}
