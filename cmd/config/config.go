package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mattsolo1/codex-sync/pkg/service"
	"github.com/mattsolo1/codex-sync/pkg/storage"
)

const envPrefix = "CODEX_SYNC"

var (
	cfgFile string

	// warnOutput receives config warnings printed before logging is set up.
	warnOutput io.Writer = os.Stderr
)

// Settings is the decoded configuration.
type Settings struct {
	Service  service.Config `mapstructure:",squash"`
	LogLevel string         `mapstructure:"log_level"`
	LogFile  string         `mapstructure:"log_file"`
	NoColor  bool           `mapstructure:"no_color"`
}

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "codex-sync")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			path := viper.ConfigFileUsed()
			if path == "" {
				path = cfgFile
			}
			fmt.Fprintf(warnOutput, "Warning: could not read config %s: %v\n", path, err)
		}
	}
}

func setDefaults() {
	home, _ := os.UserHomeDir()
	codexDir := filepath.Join(home, ".config", "codex")

	viper.SetDefault("document_path", filepath.Join(codexDir, "save.json"))
	viper.SetDefault("notes_dir", filepath.Join(codexDir, "notes"))
	viper.SetDefault("data_dir", filepath.Join(home, ".local", "share", "codex-sync"))
	viper.SetDefault("overwrite", string(storage.Overwrite))
	viper.SetDefault("backup", true)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_file", "")
	viper.SetDefault("no_color", false)
}

// Load decodes the current viper state.
func Load() (*Settings, error) {
	var settings Settings
	hook := viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc())
	if err := viper.Unmarshal(&settings, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	settings.Service.DocumentPath = expandHome(settings.Service.DocumentPath)
	settings.Service.NotesDir = expandHome(settings.Service.NotesDir)
	settings.Service.DataDir = expandHome(settings.Service.DataDir)
	settings.LogFile = expandHome(settings.LogFile)
	return &settings, nil
}

// NewLogger builds the process logger. Output goes to stderr unless a log
// file is configured, in which case it is rotated.
func NewLogger(settings *Settings) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel) // Keep it quiet unless there are issues.

	if settings.LogLevel != "" {
		level, err := logrus.ParseLevel(settings.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		logger.SetLevel(level)
	}

	if settings.LogFile != "" {
		logger.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   settings.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}))
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return logger, nil
}

// InitService loads configuration and creates the service.
func InitService() (*service.Service, *Settings, error) {
	settings, err := Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := NewLogger(settings)
	if err != nil {
		return nil, nil, err
	}

	svc, err := service.New(&settings.Service, logger)
	if err != nil {
		return nil, nil, err
	}
	return svc, settings, nil
}

func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/codex-sync/config.yaml)")
	flags.String("document", "", "path of the notebook document")
	flags.String("notes-dir", "", "managed notes directory")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Bool("no-color", false, "disable colored output")

	_ = viper.BindPFlag("document_path", flags.Lookup("document"))
	_ = viper.BindPFlag("notes_dir", flags.Lookup("notes-dir"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("no_color", flags.Lookup("no-color"))
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
