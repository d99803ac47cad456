package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/marben/fractarium"
)

type config struct {
	addr      string
	workers   int
	maxPixels int
	verbose   bool
	origins   []string
}

// parseConfig reads flags from args. FRACTARIUM_ADDR and FRACTARIUM_WORKERS
// are used when the matching flag is not given.
func parseConfig(args []string, getenv func(string) string, output io.Writer) (config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(output)

	var cfg config
	var origins string
	fs.StringVar(&cfg.addr, "addr", ":8080", "HTTP listen address")
	fs.IntVar(&cfg.workers, "workers", 0, "render goroutines per request, 0 for one per CPU")
	fs.IntVar(&cfg.maxPixels, "max-pixels", 4096*4096, "largest image a request may ask for")
	fs.BoolVar(&cfg.verbose, "v", false, "log worker and tile progress")
	fs.StringVar(&origins, "origins", "", "comma separated origin patterns allowed to open /ws")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if v := getenv("FRACTARIUM_ADDR"); v != "" && !set["addr"] {
		cfg.addr = v
	}
	if v := getenv("FRACTARIUM_WORKERS"); v != "" && !set["workers"] {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("FRACTARIUM_WORKERS %q: %w", v, fractarium.ErrConfigurationInvalid)
		}
		cfg.workers = n
	}

	if cfg.workers < 0 {
		return cfg, fmt.Errorf("workers %d: %w", cfg.workers, fractarium.ErrConfigurationInvalid)
	}
	if cfg.maxPixels <= 0 {
		return cfg, fmt.Errorf("max-pixels %d: %w", cfg.maxPixels, fractarium.ErrConfigurationInvalid)
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.origins = append(cfg.origins, o)
		}
	}
	return cfg, nil
}
