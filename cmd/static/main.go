package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/indigo-web/static"
	"github.com/indigo-web/static/config"
)

func main() {
	var (
		root    = flag.String("root", ".", "folder to serve files from")
		port    = flag.Uint("port", 8080, "port to listen on")
		cfgPath = flag.String("config", "", "path to a JSON config file")
	)
	flag.Parse()

	if err := run(*root, *port, *cfgPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(root string, port uint, cfgPath string) error {
	if port > 65535 {
		return fmt.Errorf("bad port: %d", port)
	}

	cfg := config.Default()
	if len(cfgPath) > 0 {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
	}

	log, err := static.NewLogger(cfg.Log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := static.New(root).
		Tune(cfg).
		Logger(log).
		Listen(uint16(port))

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		app.Stop()
	}()

	return app.Serve()
}
