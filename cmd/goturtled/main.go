// Command goturtled serves the artwork-to-G-code pipeline over HTTP.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"goturtle/config"
	"goturtle/server"
	"goturtle/trace"
)

func main() {
	utils.ContextualMain(mainWithArgs, golog.NewDevelopmentLogger("goturtled"))
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	fs := flag.NewFlagSet("goturtled", flag.ContinueOnError)
	addr := fs.String("addr", ":5000", "listen address")
	cfgPath := fs.String("config", "", "machine config (JSON)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	cfg := config.Default()
	if *cfgPath != "" {
		data, err := os.ReadFile(*cfgPath)
		if err != nil {
			return errors.Wrap(err, "reading config")
		}
		if cfg, err = config.Load(data); err != nil {
			return errors.Wrap(err, "parsing config")
		}
	}

	opts := trace.DefaultOptions()
	opts.Span = int(cfg.Span)

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: server.New(opts, logger).Handler(),
	}
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Infow("serving", "addr", *addr, "span", opts.Span)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
