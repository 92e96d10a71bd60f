// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program xmlrec converts XML documents into records described by an Avro
// schema, and writes them as JSON or YAML.
//
// Usage:
//
//	xmlrec --schema catalog.avsc [flags] [FILE...]
//
// With no files, xmlrec reads a single document from stdin. Each input
// produces one output document, written to stdout in input order.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/creachadair/xmlrec"
	"github.com/creachadair/xmlrec/cursor"
	"github.com/creachadair/xmlrec/internal/config"
	"github.com/creachadair/xmlrec/schema"
	"github.com/creachadair/xmlrec/schema/avsc"
	"golang.org/x/sync/errgroup"
)

// CLI defines the command-line interface. Flags left at their zero value do
// not override settings from the config file.
var CLI struct {
	Schema  string   `help:"Path to the Avro schema (.avsc) of the records." short:"s" type:"path"`
	Format  string   `help:"Output format (json or yaml)." short:"f"`
	Indent  int      `help:"Spaces per level of indentation (0 for compact JSON)." short:"n"`
	KeyCase string   `help:"Rename output keys (none, snake, camel, lower-camel, kebab)."`
	Path    string   `help:"Dotted path selecting part of each record, e.g. cd.0.title." short:"p"`
	Jobs    int      `help:"Number of inputs to convert concurrently." short:"j"`
	Config  string   `help:"Path to a YAML config file (default: search for .xmlrec.yml)." short:"c" type:"path"`
	Debug   bool     `help:"Enable debug logging." short:"d"`
	Files   []string `arg:"" optional:"" help:"Input XML files. If none, reads from stdin." type:"path"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("xmlrec"),
		kong.Description("Convert XML documents to schema-typed records"),
		kong.UsageOnError(),
	)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "xmlrec: %v\n", err)
		os.Exit(1)
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(context.Background(), cfg, CLI.Files, os.Stdin, os.Stdout, log); err != nil {
		log.Error("conversion failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig merges the config file, if any, with the command-line flags.
func loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path != "" {
		var err error
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config) {
	if CLI.Schema != "" {
		cfg.SchemaPath = CLI.Schema
	}
	if CLI.Format != "" {
		cfg.Format = CLI.Format
	}
	if CLI.Indent != 0 {
		cfg.Indent = CLI.Indent
	}
	if CLI.KeyCase != "" {
		cfg.KeyCase = CLI.KeyCase
	}
	if CLI.Path != "" {
		cfg.Path = CLI.Path
	}
	if CLI.Jobs != 0 {
		cfg.Jobs = CLI.Jobs
	}
	if CLI.Debug {
		cfg.Debug = true
	}
}

// run converts each of the named files, or stdin if there are none, and
// writes the results to stdout in order. Nothing is written if any input
// fails to convert.
func run(ctx context.Context, cfg *config.Config, files []string, stdin io.Reader, stdout io.Writer, log *slog.Logger) error {
	s, err := avsc.ParseFile(cfg.SchemaPath)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	log.Debug("loaded schema", "path", cfg.SchemaPath, "record", s.Name, "fields", s.Len())

	opts := cfg.EncodeOptions()
	path := cursor.ParsePath(cfg.Path)

	if len(files) == 0 {
		var buf bytes.Buffer
		if err := convert(stdin, s, path, opts, &buf); err != nil {
			return fmt.Errorf("<stdin>: %w", err)
		}
		_, err := stdout.Write(buf.Bytes())
		return err
	}

	outputs := make([]bytes.Buffer, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)
	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			if err := convertFile(name, s, path, opts, &outputs[i]); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			log.Debug("converted input", "file", name, "bytes", outputs[i].Len(), "elapsed", time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i := range outputs {
		if _, err := stdout.Write(outputs[i].Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func convertFile(name string, s *schema.Record, path []any, opts *xmlrec.EncodeOptions, w io.Writer) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return convert(f, s, path, opts, w)
}

func convert(r io.Reader, s *schema.Record, path []any, opts *xmlrec.EncodeOptions, w io.Writer) error {
	rec, err := xmlrec.Decode(r, s)
	if err != nil {
		return err
	}
	c := cursor.New(rec).Down(path...)
	if err := c.Err(); err != nil {
		return fmt.Errorf("path: %w", err)
	}
	return xmlrec.Encode(w, c.Value(), opts)
}
