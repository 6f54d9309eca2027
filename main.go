// Package main provides the entry point for the flash CLI application.
package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/flash/internal/audio"
	"github.com/dgnsrekt/flash/internal/cache"
	"github.com/dgnsrekt/flash/internal/deck"
	"github.com/dgnsrekt/flash/internal/session"
	"github.com/dgnsrekt/flash/internal/tts"
	homedir "github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile    string
	shuffleCards  bool
	confirmMode   bool
	recursiveMode bool
	fromCol       int
	toCol         int
	voiceCol      int
	voiceType     string
	language      string

	rootCmd = &cobra.Command{
		Use:   "flash <csv-path>",
		Short: "Quiz yourself on CSV flashcards, right in your terminal",
		Long: paragraph(
			fmt.Sprintf("\nA flashcard quiz for the CLI, %s.\n\nProvide a CSV file with columns of data. By default questions come from the first column (0) and answers from the second (1); use --from and --to to pick other columns. With --voice, a column is read aloud through text-to-speech, cached on disk so no phrase is synthesized twice.", keyword("with spaced drilling")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

// environment holds values read from the process environment.
type environment struct {
	APIKey    string `env:"OPENAI_API_KEY"`
	CacheHome string `env:"FLASH_CACHE_HOME"`
}

// validateOptions resolves flag/config values and rejects fatal column
// misconfiguration before any quiz state exists.
func validateOptions(cmd *cobra.Command) error {
	shuffleCards = viper.GetBool("shuffle")
	confirmMode = viper.GetBool("confirm")
	recursiveMode = viper.GetBool("recursive")
	fromCol = viper.GetInt("from")
	toCol = viper.GetInt("to")
	voiceCol = viper.GetInt("voice")
	voiceType = viper.GetString("voice-type")
	language = viper.GetString("language")

	// The config, cache and man subcommands don't run a quiz; a broken
	// column setting must not stop the user from editing it away.
	if cmd != rootCmd {
		return nil
	}

	return columns().Validate()
}

// columns builds the deck column configuration from the resolved options.
func columns() deck.Columns {
	voice := voiceCol
	if voice < 0 {
		voice = deck.NoVoiceColumn
	}
	return deck.Columns{From: fromCol, To: toCol, Voice: voice}
}

// resolveCacheRoot picks the audio cache directory: FLASH_CACHE_HOME,
// then the cache.dir config value, then the user cache directory, then
// the legacy ~/.flash location.
func resolveCacheRoot(envCfg environment) string {
	if envCfg.CacheHome != "" {
		return envCfg.CacheHome
	}

	if dir := viper.GetString("cache.dir"); dir != "" {
		if expanded, err := homedir.Expand(dir); err == nil {
			return expanded
		}
		return dir
	}

	scope := gap.NewScope(gap.User, "flash")
	if dir, err := scope.CacheDir(); err == nil && dir != "" {
		return dir
	}

	home, err := homedir.Dir()
	if err != nil {
		return ".flash"
	}
	return filepath.Join(home, ".flash")
}

// setupVoice wires the synthesis engine, the audio cache, and the
// player into a session speaker. Any failure here is recoverable: the
// user is asked once whether to continue without voice. A nil speaker
// with a nil error means the session runs text-only.
func setupVoice(ui *terminalUI, envCfg environment) (session.Speaker, func(), error) {
	noop := func() {}
	if voiceCol == deck.NoVoiceColumn {
		return nil, noop, nil
	}

	fail := func(problem string) (session.Speaker, func(), error) {
		fmt.Println(render(warningStyle, "Error: "+problem))
		cont, err := ui.Confirm("Continue without voice?", true)
		if err != nil {
			return nil, noop, err
		}
		if !cont {
			return nil, noop, errors.New("voice unavailable")
		}
		return nil, noop, nil
	}

	if voiceCol < 0 {
		return fail(fmt.Sprintf("voice column index must be non-negative, got %d", voiceCol))
	}
	if envCfg.APIKey == "" {
		return fail(tts.ErrMissingAPIKey.Error())
	}
	if !tts.ValidVoice(voiceType) {
		return fail(fmt.Sprintf("invalid voice type, choose from: %s",
			strings.Join(tts.AvailableVoices, ", ")))
	}
	if language != "" {
		if _, ok := tts.Instructions(strings.ToLower(language)); !ok {
			return fail(fmt.Sprintf("invalid language, choose from: %s",
				strings.Join(tts.Languages(), ", ")))
		}
	}

	engine, err := tts.NewOpenAIEngine(tts.OpenAIConfig{
		APIKey:   envCfg.APIKey,
		Voice:    voiceType,
		Language: language,
	})
	if err != nil {
		return fail(err.Error())
	}

	audioCache, err := cache.New(cache.Config{
		Root:             resolveCacheRoot(envCfg),
		CompressionLevel: viper.GetInt("cache.compression"),
	})
	if err != nil {
		return fail(fmt.Sprintf("error initializing audio cache: %v", err))
	}

	player, err := audio.NewOtoPlayer(tts.SampleRate, tts.Channels)
	if err != nil {
		return fail(fmt.Sprintf("error initializing voice reader: %v", err))
	}

	cleanup := func() {
		_ = player.Close()
		_ = engine.Close()
	}

	return &cardSpeaker{cache: audioCache, engine: engine, player: player}, cleanup, nil
}

func execute(cmd *cobra.Command, args []string) error {
	ui := newTerminalUI(os.Stdin, os.Stdout)

	envCfg, err := env.ParseAs[environment]()
	if err != nil {
		return fmt.Errorf("error parsing environment: %w", err)
	}

	speaker, cleanup, err := setupVoice(ui, envCfg)
	if err != nil {
		return err
	}
	defer cleanup()

	d, err := deck.LoadFile(args[0], columns())
	if err != nil {
		if errors.Is(err, deck.ErrNoCards) {
			return errors.New("no valid flashcards found in the CSV file")
		}
		return err
	}

	// One shuffle before the first pass; retry passes keep their order.
	if shuffleCards {
		d.Shuffle(rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	engine := session.New(ui, speaker, session.Options{
		Confirm:   confirmMode,
		Recursive: recursiveMode,
	})

	stats, _, err := engine.Run(cmd.Context(), d)
	if err != nil {
		return err
	}

	log.Debug("Session stats", "correct", stats.Correct,
		"incorrect", stats.Incorrect, "total", stats.Total)
	return nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().BoolVarP(&shuffleCards, "shuffle", "s", false, "shuffle the flashcards")
	rootCmd.Flags().BoolVarP(&confirmMode, "confirm", "c", false, "require typing the correct answer when wrong")
	rootCmd.Flags().BoolVarP(&recursiveMode, "recursive", "r", false, "retest incorrect cards until all are answered correctly")
	rootCmd.Flags().IntVarP(&fromCol, "from", "f", 0, "column index to use for questions (0-based)")
	rootCmd.Flags().IntVarP(&toCol, "to", "t", 1, "column index to use for answers (0-based)")
	rootCmd.Flags().IntVarP(&voiceCol, "voice", "v", -1, "column index to read aloud using text-to-speech (0-based)")
	rootCmd.Flags().StringVar(&voiceType, "voice-type", tts.DefaultVoice, fmt.Sprintf("voice to use for text-to-speech (%s)", strings.Join(tts.AvailableVoices, ", ")))
	rootCmd.Flags().StringVarP(&language, "language", "l", "", "language to use for text-to-speech")

	// Config bindings
	_ = viper.BindPFlag("shuffle", rootCmd.Flags().Lookup("shuffle"))
	_ = viper.BindPFlag("confirm", rootCmd.Flags().Lookup("confirm"))
	_ = viper.BindPFlag("recursive", rootCmd.Flags().Lookup("recursive"))
	_ = viper.BindPFlag("from", rootCmd.Flags().Lookup("from"))
	_ = viper.BindPFlag("to", rootCmd.Flags().Lookup("to"))
	_ = viper.BindPFlag("voice", rootCmd.Flags().Lookup("voice"))
	_ = viper.BindPFlag("voice-type", rootCmd.Flags().Lookup("voice-type"))
	_ = viper.BindPFlag("language", rootCmd.Flags().Lookup("language"))

	viper.SetDefault("from", 0)
	viper.SetDefault("to", 1)
	viper.SetDefault("voice", -1)
	viper.SetDefault("voice-type", tts.DefaultVoice)
	viper.SetDefault("language", "")
	viper.SetDefault("cache.dir", "")
	viper.SetDefault("cache.compression", 3)

	rootCmd.AddCommand(configCmd, cacheCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "flash")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "flash")}, dirs...)
	}

	if c := os.Getenv("FLASH_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("flash")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("flash")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "flash.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
