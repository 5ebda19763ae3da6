package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/abdul-hamid-achik/simple-http-client/packages/args"
	"github.com/abdul-hamid-achik/simple-http-client/packages/core/config"
	"github.com/abdul-hamid-achik/simple-http-client/packages/core/env"
	"github.com/abdul-hamid-achik/simple-http-client/packages/core/runner"
	"github.com/abdul-hamid-achik/simple-http-client/packages/logger"
	"github.com/abdul-hamid-achik/simple-http-client/packages/output"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "simple-http-client -url=<url> -method=<method> [-req=<path>] [-log=<path>]",
	Short: "Send one HTTP request and print the response.",
	Long: `simple-http-client sends a single HTTP request and prints the status line,
the response headers in the order the server sent them, a blank line and,
for a 200 response, the body decoded with the charset from Content-Type.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceErrors:      true,
	SilenceUsage:       true,
	RunE:               rootCommand,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	_ = logger.Logger().Sync()
	os.Exit(ExitCode(err))
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func rootCommand(cmd *cobra.Command, argv []string) error {
	inv := args.Parse(argv)

	console := output.NewConsole(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithErrWriter(cmd.ErrOrStderr()),
	)

	if inv.Help {
		console.FormatHelp(HelpText())
		return nil
	}

	if err := args.Validate(inv); err != nil {
		console.FormatUsageError(errors.New(args.UsageMessage(err)), HelpText())
		return nil
	}

	ctx := logger.WithKV(cmd.Context(), "run_id", uuid.NewString())

	cfg, err := loadConfig(ctx, inv)
	if err != nil {
		console.FormatError(err)
		return err
	}

	console = output.NewConsole(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithErrWriter(cmd.ErrOrStderr()),
		output.WithNoColor(cfg.GetNoColor()),
	)

	applyLogLevel(ctx, cfg, inv.Verbose)

	r := runner.NewRunner(&runner.Config{
		Timeout:        cfg.GetTimeout(),
		FollowRedirect: cfg.GetFollowRedirects(),
		MaxRedirects:   cfg.MaxRedirects,
		ValidateSSL:    cfg.GetValidateSSL(),
		Proxy:          cfg.Proxy,
		Headers:        cfg.Headers,
		Verbose:        logger.IsDebugLevel(),
	}, runner.WithStdout(cmd.OutOrStdout()))

	logger.DebugKV(ctx, "starting run", "method", inv.Method, "url", inv.URL)

	if _, err := r.Run(ctx, inv); err != nil {
		console.FormatError(err)
		console.FormatCause(err)
		logger.ErrorKV(ctx, "run failed", "error", err, "exit_code", ExitCode(err))
		return err
	}

	return nil
}

// loadConfig exports the dotenv file, if any, then resolves the config
// file and SHC_* overrides.
func loadConfig(ctx context.Context, inv *args.Invocation) (*config.Config, error) {
	if inv.EnvFile != "" {
		exported, err := env.LoadAndExportDotEnv(inv.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
		}
		logger.DebugKV(ctx, "loaded env file", "path", inv.EnvFile, "exported", exported)
	}

	cfg, err := config.LoadConfig(inv.ConfigPath)
	if err != nil {
		return nil, err
	}
	return cfg.ApplyEnvironment(), nil
}

func applyLogLevel(ctx context.Context, cfg *config.Config, verbose bool) {
	if verbose {
		logger.SetLevel(zapcore.DebugLevel)
		return
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		logger.WarnKV(ctx, "unknown log level, keeping default", "level", cfg.LogLevel)
		return
	}
	logger.SetLevel(level)
}
