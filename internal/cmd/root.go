package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vnykmshr/shellkit/internal/config"
	"github.com/vnykmshr/shellkit/internal/observability"
)

// Version info set by main package
var versionInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// app carries state shared by subcommands of one invocation.
type app struct {
	viper   *viper.Viper
	cfgFile string
	verbose bool
	config  *config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{viper: config.NewViper()}

	root := &cobra.Command{
		Use:   "shellkit",
		Short: "Load, cache and serve external SDK scripts",
		Long: `shellkit loads an external script such as a map SDK exactly once,
optionally shares it through Redis, and serves it to other processes.

It also exposes the formatting helpers used by dashboard back ends.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./config/shellkit.yaml or the user config dir)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output (sets log level to debug)")

	root.AddCommand(
		newFetchCmd(a),
		newServeCmd(a),
		newFormatCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) init(cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if keys, ok := f.Annotations[configKeyAnnotation]; ok && bindErr == nil {
			bindErr = a.viper.BindPFlag(keys[0], f)
		}
	})
	if bindErr != nil {
		return bindErr
	}

	cfg, err := config.Load(a.viper, a.cfgFile)
	if err != nil {
		return err
	}
	a.config = cfg

	opts := observability.LogOptions{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if err := observability.InitCLILogger(opts, a.verbose); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if used := a.viper.ConfigFileUsed(); used != "" {
		observability.CLILogger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

const configKeyAnnotation = "shellkit_config_key"

// bindFlag ties a command flag to a config key so the flag wins over file
// and environment values when set. Binding happens when the command runs, so
// sibling commands can bind the same key.
func bindFlag(cmd *cobra.Command, flag, key string) {
	if err := cmd.Flags().SetAnnotation(flag, configKeyAnnotation, []string{key}); err != nil {
		panic(err)
	}
}
