package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Tyrowin/chatroom/internal/chat"
	"github.com/Tyrowin/chatroom/internal/identity"
	"github.com/Tyrowin/chatroom/internal/logging"
	"github.com/Tyrowin/chatroom/internal/notify"
	"github.com/Tyrowin/chatroom/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "chatroom",
		Usage: "single-room WebSocket chat server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Usage: "dotenv file loaded before reading the environment", Value: ".env"},
			&cli.StringFlag{Name: "port", Usage: "listen address, overrides SERVER_PORT"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error, overrides LOG_LEVEL"},
			&cli.BoolFlag{Name: "strict-identity", Usage: "require joins to use the verified name"},
			&cli.BoolFlag{Name: "rejection-notices", Usage: "tell clients why a join was dropped"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return run(ctx, cfg)
		},
	}
}

// loadConfig reads the dotenv file, then the environment, then applies any
// flags given on the command line.
func loadConfig(cmd *cli.Command) (*server.Config, error) {
	if err := godotenv.Load(cmd.String("env-file")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", cmd.String("env-file"), err)
	}

	cfg, err := server.NewConfigFromEnv()
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("port") {
		cfg.Port = cmd.String("port")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("strict-identity") {
		cfg.StrictIdentity = cmd.Bool("strict-identity")
	}
	if cmd.IsSet("rejection-notices") {
		cfg.RejectionNotices = cmd.Bool("rejection-notices")
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg *server.Config) error {
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	observers := chat.Observers{chat.NewLogObserver(log)}
	if cfg.NATSURL != "" {
		nc, err := notify.Connect(cfg.NATSURL, "chatroom", log)
		if err != nil {
			return fmt.Errorf("connecting to nats: %w", err)
		}
		defer func() {
			if err := nc.Drain(); err != nil {
				log.Warn("draining nats connection", zap.Error(err))
			}
		}()
		observers = append(observers, notify.NewNATSObserver(nc, cfg.NATSSubjectPrefix, log))
		log.Info("publishing room activity", zap.String("nats", cfg.NATSURL), zap.String("prefix", cfg.NATSSubjectPrefix))
	}

	var provider server.IdentityProvider = server.AnonymousIdentity{}
	if cfg.JWTSecret != "" {
		jwtProvider, err := identity.NewJWTProvider(cfg.JWTSecret)
		if err != nil {
			return err
		}
		provider = jwtProvider
	}

	srv := server.New(*cfg, provider, observers, log)
	srv.StartRoom()

	httpServer := srv.HTTPServer()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.StartServer(httpServer, log)
	}()

	select {
	case err := <-serveErr:
		_ = srv.Shutdown(cfg.ShutdownTimeout)
		return err
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	if err := server.ShutdownServer(httpServer, cfg.ShutdownTimeout, log); err != nil {
		log.Warn("http shutdown incomplete", zap.Error(err))
	}
	return srv.Shutdown(cfg.ShutdownTimeout)
}
