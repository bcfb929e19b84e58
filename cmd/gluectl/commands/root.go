// Package commands implements the gluectl subcommands.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ansumanroy/glueregistry-commons/pkg/logger"
	"github.com/ansumanroy/glueregistry-commons/pkg/registry"
)

// rootOptions carries the connection flags shared by every subcommand.
type rootOptions struct {
	configFile string
	registry   string
	region     string
	endpoint   string
	verbose    bool
}

// NewRootCmd builds the gluectl command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "gluectl",
		Short:   "Manage schemas in an AWS Glue Schema Registry",
		Long:    `gluectl creates, inspects, and versions schemas in an AWS Glue Schema Registry, and encodes/decodes SalesforceAudit records against them.`,
		Version: version,

		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.registry, "registry", "", "Registry name (default: GLUE_REGISTRY_NAME)")
	rootCmd.PersistentFlags().StringVar(&opts.region, "region", "", "AWS region (default: AWS_REGION)")
	rootCmd.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "Override the Glue service endpoint")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newCreateCmd(opts),
		newGetCmd(opts),
		newListCmd(opts),
		newRegisterCmd(opts),
		newSetCompatibilityCmd(opts),
		newEncodeCmd(opts),
		newDecodeCmd(opts),
	)

	return rootCmd
}

// newClient resolves configuration and builds the registry client. Flags win
// over environment variables, which win over the config file.
func (o *rootOptions) newClient(ctx context.Context) (*registry.Client, *zap.Logger, error) {
	log, err := o.newLogger()
	if err != nil {
		return nil, nil, err
	}

	v := viper.New()
	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("failed to read config file [%s]: %w", o.configFile, err)
		}
	}

	cfg, err := registry.NewConfig(v)
	if err != nil {
		return nil, nil, err
	}
	if o.registry != "" {
		cfg.RegistryName = o.registry
	}
	if o.region != "" {
		cfg.Region = o.region
	}
	if o.endpoint != "" {
		cfg.Endpoint = o.endpoint
	}

	client, err := registry.NewClient(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	return client, log, nil
}

func (o *rootOptions) newLogger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if o.verbose {
		level = zapcore.DebugLevel
	}
	return logger.New(logger.Config{
		Level:           level,
		Development:     true,
		StacktraceLevel: zapcore.ErrorLevel,
	})
}
