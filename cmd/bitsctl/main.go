// Command bitsctl decodes a BITS transmission and prints the sum of its
// packet versions.
//
// Usage:
//
//	bitsctl [flags] [input]
//	bitsctl -write-config bitsctl.toml
//
// Examples:
//
//	bitsctl input/day16.txt
//	bitsctl -tree input/day16.txt
//	bitsctl -format json -config bitsctl.toml
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/bitsctl/internal/bits"
	"github.com/danmuck/bitsctl/internal/config"
	"github.com/danmuck/bitsctl/internal/input"
	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/danmuck/bitsctl/internal/packet"
	"github.com/danmuck/bitsctl/internal/report"
	"github.com/rs/zerolog/log"
)

type options struct {
	configPath  string
	format      string
	showTree    bool
	maxDepth    int
	writeConfig string
	force       bool
	input       string
	set         map[string]bool
}

func main() {
	logging.ConfigureRuntime()

	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	if opts.writeConfig != "" {
		if err := config.WriteTemplate(opts.writeConfig, opts.force); err != nil {
			log.Fatal().Err(err).Msg("failed to write config template")
		}
		log.Info().Str("path", opts.writeConfig).Msg("wrote config template")
		return
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	lc := cfg.Logging()
	logging.ApplyEnvOverrides(&lc)
	logging.Apply(lc)

	if err := run(os.Stdout, cfg); err != nil {
		log.Fatal().Err(err).Str("input", cfg.Input).Msg("decode failed")
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var opts options
	fs.StringVar(&opts.configPath, "config", "", "TOML config path (optional)")
	fs.StringVar(&opts.format, "format", "", "output format: text|json|yaml")
	fs.BoolVar(&opts.showTree, "tree", false, "include the decoded packet tree")
	fs.IntVar(&opts.maxDepth, "max-depth", 0, "maximum packet nesting (0 disables the limit)")
	fs.StringVar(&opts.writeConfig, "write-config", "", "write a config template to this path and exit")
	fs.BoolVar(&opts.force, "force", false, "overwrite an existing config template")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: bitsctl [flags] [input]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return options{}, fmt.Errorf("expected at most one input path, got %d", fs.NArg())
	}
	opts.input = fs.Arg(0)
	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// resolveConfig layers defaults, the optional config file and explicit flags.
func resolveConfig(opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if opts.set["format"] {
		f, err := report.ParseFormat(opts.format)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Format = f
	}
	if opts.set["tree"] {
		cfg.ShowTree = opts.showTree
	}
	if opts.set["max-depth"] {
		cfg.MaxDepth = opts.maxDepth
	}
	if opts.input != "" {
		cfg.Input = opts.input
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(w io.Writer, cfg config.Config) error {
	lines, err := input.ReadLines(cfg.Input)
	if err != nil {
		return err
	}
	words, err := bits.ParseLines(lines)
	if err != nil {
		return err
	}
	r := bits.NewReader(words)
	p, err := packet.Decode(r, cfg.Limits())
	if err != nil {
		return err
	}
	doc := report.NewDocument(p, r, cfg.ShowTree)
	log.Debug().
		Uint64("version_sum", doc.Summary.VersionSum).
		Int("packets", doc.Summary.Packets).
		Int("bits_read", doc.Summary.BitsRead).
		Int("bits_total", doc.Summary.BitsTotal).
		Msg("decoded transmission")
	return report.Render(w, cfg.Format, doc)
}
