package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"Castcard/internal/core/casts"
	"Castcard/internal/web"
)

// render-cast fetches one cast and prints its embed card or view model.
//
// Usage:
//
//	go run ./cmd/render-cast -url https://warpcast.com/dwr/0x1a2b3c4d > card.html
//	go run ./cmd/render-cast -username dwr -hash 0x1a2b3c4d -format json
//
// Provider settings come from the same CASTCARD_* environment variables as the server.
func main() {
	cfg := casts.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid cast configuration: %v", err)
	}

	if err := run(context.Background(), os.Args[1:], os.Stdout, casts.NewHTTPClient(cfg), cfg); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(os.Stderr, usageErr.msg)
			os.Exit(2)
		}
		log.Fatalf("render-cast: %v", err)
	}
}

type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func run(ctx context.Context, args []string, out io.Writer, client casts.Client, cfg casts.Config) error {
	fs := flag.NewFlagSet("render-cast", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	rawURL := fs.String("url", "", "cast URL, e.g. https://warpcast.com/dwr/0x1a2b3c4d")
	username := fs.String("username", "", "author username (with -hash)")
	hash := fs.String("hash", "", "cast hash prefix (with -username)")
	format := fs.String("format", "html", "output format: html or json")

	if err := fs.Parse(args); err != nil {
		return &usageError{msg: err.Error()}
	}
	if *format != "html" && *format != "json" {
		return &usageError{msg: fmt.Sprintf("unknown format %q, expected html or json", *format)}
	}

	id, err := casts.NewIdentifier(*rawURL, *username, *hash)
	if err != nil {
		return &usageError{msg: err.Error()}
	}

	svc := casts.NewService(client,
		casts.WithTimeout(cfg.FetchTimeout),
		casts.WithViewOptions(cfg.ViewOptions()),
	)

	view, err := svc.RenderView(ctx, id)
	if err != nil {
		return err
	}

	if *format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	templates, err := web.NewTemplates(cfg.WebBaseURL)
	if err != nil {
		return err
	}
	return templates.Execute(out, "cast.html", web.NewCastPageData(view))
}
