package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"kassa/internal/config"
	"kassa/internal/data"
	"kassa/internal/session"

	"go.uber.org/zap"
)

type Runner struct {
	options Options
	logger  *zap.Logger
	store   *data.Store
	gateway *data.Gateway
	manager *session.Manager
}

func NewRunner(cfg config.Config, logger *zap.Logger, store *data.Store, gateway *data.Gateway, manager *session.Manager) *Runner {
	logger = logger.Named("cli")
	opts := Options{
		BaseURL:   cfg.BaseURL,
		TokenFile: cfg.TokenFile,
		JSON:      cfg.JSON,
		LogFile:   cfg.LogFile,
		Timeout:   cfg.Timeout,
	}

	return &Runner{
		options: opts,
		logger:  logger,
		store:   store,
		gateway: gateway,
		manager: manager,
	}
}

func (r *Runner) Execute() error {
	fs := flag.NewFlagSet("kassa", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [command ...]\n\nCommands:\n", fs.Name())
		fmt.Fprint(os.Stderr, commandHelp)
		fs.PrintDefaults()
	}

	fs.StringVar(&r.options.From, "from", "", "Start date for sales history (YYYY-MM-DD)")
	fs.StringVar(&r.options.To, "to", "", "End date for sales history (YYYY-MM-DD)")
	fs.BoolVar(&r.options.JSON, "json", r.options.JSON, "Output JSON format")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			fs.Usage()
			return nil
		}
		return err
	}
	r.options.Command = fs.Args()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if r.manager.Resume(ctx) {
		if user := r.manager.CurrentUser(); user != nil {
			fmt.Fprintf(os.Stdout, "Sessiya tiklandi: %s\n", user.Name)
		}
	}

	if len(r.options.Command) > 0 {
		return r.runCommand(ctx, r.options.Command)
	}
	return r.runREPL(ctx)
}

func (r *Runner) runREPL(ctx context.Context) error {
	reader := bufio.NewScanner(os.Stdin)
	fmt.Fprintln(os.Stdout, "Kassa terminal (type 'help', 'exit' to quit)")

	for {
		fmt.Fprint(os.Stdout, "> ")
		if !reader.Scan() {
			return reader.Err()
		}

		line := strings.TrimSpace(reader.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "help":
			fmt.Fprint(os.Stdout, commandHelp)
			continue
		}

		if err := r.runCommand(ctx, strings.Fields(line)); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(os.Stdout, "Xatolik: %s\n", friendlyError(err))
		}
	}
}
