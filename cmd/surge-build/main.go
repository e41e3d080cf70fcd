package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/MoeYc/Surge"
	"github.com/MoeYc/Surge/api"
	"github.com/MoeYc/Surge/build"
	"github.com/MoeYc/Surge/jsoncfg"
	"github.com/MoeYc/Surge/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version  bool
	fmtConf  bool
	testConf bool
	confPath string
	zapConf  string
	logLevel zapcore.Level
)

func init() {
	flag.BoolVar(&version, "version", false, "Print version information and exit")
	flag.BoolVar(&fmtConf, "fmtConf", false, "Format the configuration file")
	flag.BoolVar(&testConf, "testConf", false, "Test the configuration file and exit")
	flag.StringVar(&confPath, "confPath", "config.json", "Path to the JSON configuration file")
	flag.StringVar(&zapConf, "zapConf", "console", "Preset name or path to the JSON configuration file for building the zap logger.\nAvailable presets: console, console-nocolor, console-notime, systemd, production, development")
	flag.TextVar(&logLevel, "logLevel", zapcore.InfoLevel, "Log level for the console and systemd presets.\nAvailable levels: debug, info, warn, error, dpanic, panic, fatal")
}

type config struct {
	build.Config
	API api.Config `json:"api,omitzero"`
}

func main() {
	flag.Parse()

	if version {
		os.Stdout.WriteString("surge-build " + surge.Version + "\n")
		if info, ok := debug.ReadBuildInfo(); ok {
			os.Stdout.WriteString(info.String())
		}
		return
	}

	logger, err := logging.NewZapLogger(zapConf, logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("surge-build", zap.String("version", surge.Version))

	var sc config
	if err = jsoncfg.Open(confPath, &sc); err != nil {
		logger.Fatal("Failed to load config",
			zap.String("confPath", confPath),
			zap.Error(err),
		)
	}

	if fmtConf {
		if err = jsoncfg.Save(confPath, sc); err != nil {
			logger.Fatal("Failed to save config",
				zap.String("confPath", confPath),
				zap.Error(err),
			)
		}
		logger.Info("Formatted config file", zap.String("confPath", confPath))
	}

	builder, err := build.NewBuilder(sc.Config, logger)
	if err != nil {
		logger.Fatal("Failed to create builder",
			zap.String("confPath", confPath),
			zap.Error(err),
		)
	}

	if testConf {
		logger.Info("Config test OK", zap.String("confPath", confPath))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("Received exit signal", zap.Stringer("signal", sig))
		signal.Stop(sigCh)
		cancel()
	}()

	interval := sc.Interval.Value()
	if interval <= 0 && !sc.API.Enabled {
		if _, err = builder.Build(ctx); err != nil {
			logger.Fatal("Failed to build rulesets", zap.Error(err))
		}
		return
	}

	services := []surge.Service{build.NewManager(builder, interval, logger)}
	if sc.API.Enabled {
		server, err := sc.API.NewServer(logger, builder, sc.OutputDir)
		if err != nil {
			logger.Fatal("Failed to create API server", zap.Error(err))
		}
		services = append(services, server)
	}

	for _, s := range services {
		if err = s.Start(ctx); err != nil {
			logger.Fatal("Failed to start service", s.ZapField(), zap.Error(err))
		}
	}

	<-ctx.Done()

	for i := len(services) - 1; i >= 0; i-- {
		s := services[i]
		if err := s.Stop(); err != nil {
			logger.Error("Failed to stop service", s.ZapField(), zap.Error(err))
		}
	}
}
