package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"keyphrase/api"
	"keyphrase/config"
	"keyphrase/file"
	"keyphrase/keyword"
	"keyphrase/pkg/logging"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	errInputMode = errors.New("exactly one of --text, --file or --api is required")
	errEmptyText = errors.New("Empty text provided")
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "keyphrase",
		Usage: "Extract representative keywords from English text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "text",
				Aliases: []string{"t"},
				Usage:   "Text to extract keywords from",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Path to a .txt file to extract keywords from",
			},
			&cli.BoolFlag{
				Name:  "api",
				Usage: "Run the HTTP API server",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				EnvVars: []string{"KEYPHRASE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "API server port",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if err := checkInputMode(c); err != nil {
		return err
	}

	// =========
	// Config
	// =========
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("log-level") {
		cfg.App.LogLevel = c.String("log-level")
	}
	if c.IsSet("port") {
		cfg.App.Port = c.Int("port")
	}

	// =========
	// Logging
	// =========
	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Env)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Read input before loading models so bad input fails fast.
	input, err := readInput(c, file.NewTxtExtractor())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// =========
	// Pipeline
	// =========
	p, err := newPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize pipeline", zap.Error(err))
		return err
	}
	defer p.Close()

	if c.Bool("api") {
		server := api.NewServer(p.extractor, logger, api.ServerConfig{
			Port:           cfg.App.Port,
			RequestTimeout: cfg.App.RequestTimeout,
			MaxUploadBytes: cfg.App.MaxUploadBytes,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		})
		return server.Start(ctx)
	}

	keywords, err := p.extractor.ExtractKeywords(ctx, input)
	if err != nil {
		return err
	}
	writeKeywords(c.App.Writer, keywords)
	return nil
}

func checkInputMode(c *cli.Context) error {
	n := 0
	for _, name := range []string{"text", "file", "api"} {
		if c.IsSet(name) {
			n++
		}
	}
	if n != 1 {
		return errInputMode
	}
	return nil
}

// readInput returns the --text or --file input, rejecting blank text. It
// returns "" in --api mode.
func readInput(c *cli.Context, extractor file.TextExtractor) (string, error) {
	var input string
	switch {
	case c.IsSet("file"):
		res, err := extractor.ExtractText(c.String("file"))
		if err != nil {
			return "", err
		}
		input = res.Text
	case c.IsSet("text"):
		input = c.String("text")
	default:
		return "", nil
	}

	if strings.TrimSpace(input) == "" {
		return "", errEmptyText
	}
	return input, nil
}

func writeKeywords(w io.Writer, keywords []keyword.KeywordScore) {
	fmt.Fprintln(w, "Extracted Keywords:")
	for _, kw := range keywords {
		fmt.Fprintf(w, "%s: %.4f\n", kw.Keyword, kw.Score)
	}
}
