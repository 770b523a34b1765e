package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/spf13/cobra"

	"github.com/evalchain/evalchain"
	filePersist "github.com/evalchain/evalchain/persist/file"
	s3Persist "github.com/evalchain/evalchain/persist/s3"
)

var (
	cfgPath       string
	chainOverride string
	cfg           Config
	logger        *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "evalchain",
	Short: "Track revisions of a nuclear-data evaluation file as a chain of patches",
	Long: `evalchain records successive revisions of an ENDF-6 evaluation file as an
append-only chain of immutable blocks.  Each run parses the given tape,
diffs it against the latest recorded revision, and appends a block holding
the structural patch and a hash pointer to the previous block.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = LoadConfig(cfgPath)
		if err != nil {
			return err
		}
		if chainOverride != "" {
			cfg.ChainFile = chainOverride
		}
		logger = newLogger(cfg.LogLevel)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a config file (default evalchain.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&chainOverride, "chain", "", "chain document name, overriding the config")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// openStore picks the chain storage backend from the config: an S3 bucket
// when one is configured, the local directory otherwise.
func openStore() (evalchain.Persist, error) {
	if cfg.Store.S3.Bucket != "" {
		awsConfig := aws.Config{}
		if cfg.Store.S3.Region != "" {
			awsConfig.Region = aws.String(cfg.Store.S3.Region)
		}
		if cfg.Store.S3.Endpoint != "" {
			awsConfig.Endpoint = aws.String(cfg.Store.S3.Endpoint)
			awsConfig.S3ForcePathStyle = aws.Bool(true)
		}
		sess, err := session.NewSession(&awsConfig)
		if err != nil {
			return nil, fmt.Errorf("s3 session: %w", err)
		}
		return s3Persist.NewPersist(awss3.New(sess), cfg.Store.S3.Bucket, cfg.Store.S3.Prefix), nil
	}
	if err := os.MkdirAll(cfg.Store.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return filePersist.NewPersistForPath(cfg.Store.Dir), nil
}
