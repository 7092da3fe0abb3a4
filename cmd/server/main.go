package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/handlers"
	"github.com/vancomm/minesweeper-engine/internal/logging"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var (
	log = logrus.New()

	configPath string
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

// sweep drops idle sessions until ctx is done.
func sweep(ctx context.Context, store *session.Store, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			store.Sweep()
		}
	}
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	cfg, err := config.Read(configPath)
	if err != nil {
		log.Fatalf("unable to read config %s: %s", configPath, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config: ", err)
	}
	if err := logging.Setup(cfg, log, mines.Log); err != nil {
		log.Fatal(err)
	}

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	store, err := session.NewStore(cfg.Session, log)
	if err != nil {
		log.Fatal("unable to create session store: ", err)
	}

	mux := http.NewServeMux()
	handlers.NewGameHandler(
		log, store, cfg.Game.Params(), handlers.NewWebSocket(log, cfg.Origins),
	).Register(mux)

	server := &http.Server{
		Addr: cfg.Addr,
		Handler: middleware.Wrap(mux,
			middleware.SessionToken(),
			middleware.Cors(cfg.Origins),
			middleware.Logging(log),
		),
		BaseContext: func(l net.Listener) context.Context {
			return mainCtx
		},
	}

	log.Infof("ready to serve @ %s", cfg.Addr)

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		return server.Shutdown(context.Background())
	})
	g.Go(func() error {
		return sweep(gCtx, store, max(cfg.Session.IdleTimeout.Duration/2, time.Second))
	})

	if err := g.Wait(); err != nil {
		log.Printf("exit reason: %s\n", err)
	}
}
