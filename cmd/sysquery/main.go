// Package main is the entry point for sysquery.
// It registers the platform plugin on its method channel and either answers a
// single call on the command line or serves the channels over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Guliveer/sysquery/internal/channel"
	"github.com/Guliveer/sysquery/internal/config"
	"github.com/Guliveer/sysquery/internal/platform"
	"github.com/Guliveer/sysquery/internal/plugin"
	"github.com/Guliveer/sysquery/internal/server"
	"github.com/Guliveer/sysquery/internal/service"
)

// version is set at build time via -ldflags.
var version = "dev"

// newPlatform is swapped in tests.
var newPlatform = platform.New

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	method      string
	args        string
	serve       bool
	listen      string
	channel     string
	logLevel    string
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("sysquery", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (default: auto-discover)")
	fs.StringVarP(&opts.method, "method", "m", plugin.MethodGetPlatformVersion, "Method to invoke on the plugin channel")
	fs.StringVar(&opts.args, "args", "", "Method arguments as JSON")
	fs.BoolVar(&opts.serve, "serve", false, "Serve method channels over HTTP")
	fs.StringVar(&opts.listen, "listen", "", "HTTP listen address (overrides config)")
	fs.StringVar(&opts.channel, "channel", "", "Channel name (overrides config)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVarP(&opts.showVersion, "version", "v", false, "Show version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "sysquery %s\n", version)
		return 0
	}

	cfg, err := config.Load(config.CLIOverrides{
		Listen:   opts.listen,
		Channel:  opts.channel,
		LogLevel: opts.logLevel,
	}, opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	logger := initLogger(cfg, stderr)
	defer logger.Sync()

	messenger := channel.NewMessenger(logger)
	if err := plugin.Register(messenger, newPlatform(), cfg.Channel.Name); err != nil {
		logger.Error("Plugin registration failed", zap.Error(err))
		return 1
	}

	if opts.serve {
		return serve(cfg, messenger, logger)
	}
	return invoke(cfg, messenger, opts, stdout, stderr)
}

// invoke answers a single call and prints the result.
func invoke(cfg *config.Config, m *channel.Messenger, opts *options, stdout, stderr io.Writer) int {
	call := channel.MethodCall{Method: opts.method}
	if opts.args != "" {
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(opts.args, &call.Arguments); err != nil {
			fmt.Fprintf(stderr, "Invalid --args: %v\n", err)
			return 2
		}
	}

	result, err := m.Send(context.Background(), cfg.Channel.Name, call)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if s, ok := result.(string); ok {
		fmt.Fprintln(stdout, s)
		return 0
	}
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(result)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to encode result: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, out)
	return 0
}

// serve runs the HTTP transport until a signal or SCM stop request arrives.
func serve(cfg *config.Config, m *channel.Messenger, logger *zap.Logger) int {
	srv := server.New(cfg, m, logger)

	logger.Info("Starting sysquery",
		zap.String("version", version),
		zap.String("listen", cfg.Server.Listen),
		zap.String("channel", cfg.Channel.Name))

	if service.IsWindowsService() {
		logger.Info("Running as Windows service")
		if err := service.New(logger, srv.Run).Run(); err != nil {
			logger.Error("Service failed", zap.Error(err))
			return 1
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("Server failed", zap.Error(err))
		return 1
	}
	logger.Info("sysquery stopped")
	return 0
}
