package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Drolfothesgnir/stackmark/api"
	"github.com/Drolfothesgnir/stackmark/cache"
	"github.com/Drolfothesgnir/stackmark/util"
	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var interruptSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
	syscall.SIGINT,
}

type CLI struct {
	Config string `short:"c" help:"Directory containing app.env" default:"." type:"path"`

	Serve  ServeCmd  `cmd:"" default:"1" help:"Run the HTTP rendering service"`
	Render RenderCmd `cmd:"" help:"Render markdown from a file or stdin to stdout"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("stackmark"),
		kong.Description("Inline markdown to HTML renderer."),
	)

	// reading .env config file
	config, err := util.LoadConfig(cli.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read config")
	}

	if config.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	kctx.FatalIfErrorf(kctx.Run(config))
}

type ServeCmd struct{}

func (cmd *ServeCmd) Run(config util.Config) error {
	// catching interrupt signals for graceful shutdown
	// stop() or a signal catch makes context Done
	ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
	defer stop()

	var store cache.Store
	if config.RedisAddress != "" {
		redisStore := cache.NewStore(&config)
		defer redisStore.Close()
		store = redisStore
	} else {
		log.Warn().Msg("REDIS_ADDRESS is empty, render cache is disabled")
	}

	// waitgroup which manages goroutines for starting and stopping HTTP server
	waitGroup, ctx := errgroup.WithContext(ctx)

	RunGinServer(ctx, waitGroup, config, store)

	if err := waitGroup.Wait(); err != nil {
		log.Error().Err(err).Msg("error from wait group")
		return err
	}

	return nil
}

func RunGinServer(
	ctx context.Context,
	waitGroup *errgroup.Group,
	config util.Config,
	store cache.Store,
) {
	service, err := api.NewService(config, store)
	if err != nil {
		waitGroup.Go(func() error {
			log.Error().Err(err).Msg("cannot create HTTP service")
			return err
		})
		return
	}

	waitGroup.Go(func() error {
		log.Info().Msgf("start HTTP server at %s", config.HTTPServerAddress)

		err := service.Start()

		if err != nil {
			//http.ErrServerClosed is returned once the server begins shutting down
			// which is normal
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			log.Error().Err(err).Msg("cannot start HTTP server")
		}

		return err
	})

	waitGroup.Go(func() error {
		<-ctx.Done()

		log.Info().Msg("HTTP server: graceful shutdown")

		// give the server 5 secs to finish all his processes
		toCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := service.Shutdown(toCtx)

		if err != nil {
			log.Error().Err(err).Msg("cannot shutdown HTTP server gracefully")
		}

		log.Info().Msg("HTTP server is stopped")

		return err
	})
}
