// Package cmd implements the froid command line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	log "github.com/jensneuse/abstractlogger"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/TykTechnologies/graphql-froid/pkg/froid"
	"github.com/TykTechnologies/graphql-froid/pkg/transform"
)

const (
	configFileName = ".froid"
	envPrefix      = "FROID"

	keyTransform   = "transform"
	keyBrotliLevel = "brotli-level"
	keyMaxDecoded  = "max-decoded-size"
	keyLogLevel    = "log-level"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "froid",
	Short: "froid translates between Relay global ids and federation entities",
	Long: `froid encodes federation entity representations into Relay global object
identifiers and decodes node(id:) queries back into the entity fields.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.froid.yaml)")
	rootCmd.PersistentFlags().String(keyTransform, transform.NameIdentity, "payload transform: identity or brotli")
	rootCmd.PersistentFlags().Int(keyBrotliLevel, transform.DefaultBrotliLevel, "compression level of the brotli transform")
	rootCmd.PersistentFlags().Int64(keyMaxDecoded, transform.DefaultMaxDecodedSize, "largest payload in bytes a global id may decompress to")
	rootCmd.PersistentFlags().String(keyLogLevel, "info", "log level: debug, info, warn or error")

	for _, key := range []string{keyTransform, keyBrotliLevel, keyMaxDecoded, keyLogLevel} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(configFileName)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds a zap production logger behind the abstractlogger facade.
func newLogger() (log.Logger, func(), error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(viper.GetString(keyLogLevel))); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	logger, err := config.Build()
	if err != nil {
		return nil, nil, err
	}

	return log.NewZapLogger(logger, abstractLevel(zapLevel)), func() { _ = logger.Sync() }, nil
}

func abstractLevel(level zapcore.Level) log.Level {
	switch level {
	case zapcore.DebugLevel:
		return log.DebugLevel
	case zapcore.InfoLevel:
		return log.InfoLevel
	case zapcore.WarnLevel:
		return log.WarnLevel
	default:
		return log.ErrorLevel
	}
}

// newService builds a froid.Service from the persistent flags.
func newService(config froid.Config) (*froid.Service, error) {
	payloadTransform, err := transform.ByName(viper.GetString(keyTransform), viper.GetInt(keyBrotliLevel), viper.GetInt64(keyMaxDecoded))
	if err != nil {
		return nil, err
	}
	config.Transform = payloadTransform

	return froid.NewService(config), nil
}
