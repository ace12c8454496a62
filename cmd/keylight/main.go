// Package main is the entry point for the keylight viewer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/dshills/keylight/internal/config"
	"github.com/dshills/keylight/internal/config/watcher"
	"github.com/dshills/keylight/internal/config/wordlist"
	"github.com/dshills/keylight/internal/engine/buffer"
	"github.com/dshills/keylight/internal/rules"
	"github.com/dshills/keylight/internal/session"
	"github.com/dshills/keylight/internal/view"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "", "configuration file (TOML or YAML)")
		rulesPath   = flag.String("rules", "", "Lua rules file with scripted keyword groups")
		wordsPath   = flag.String("words", "", "plain-text word list imported into a new group")
		watchConfig = flag.Bool("watch", false, "reload configuration when the file changes")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("keylight %s (%s)\n", version, commit)
		return 0
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: keylight [flags] <file>")
		flag.PrintDefaults()
		return 2
	}

	cfg, err := loadConfig(*configPath, *rulesPath, *wordsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	store := config.NewStore(cfg)

	if *watchConfig && *configPath != "" {
		w, err := watcher.New(*configPath, func(path string) {
			reloaded, err := config.Load(path)
			if err != nil {
				return
			}
			store.Replace(reloaded)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: watching config: %v\n", err)
			return 1
		}
		defer w.Close()
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	buf, err := buffer.FromReader(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading %s: %v\n", flag.Arg(0), err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	v := view.New(screen, session.New(buf, store))
	if err := v.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig assembles the configuration from the config file, scripted
// rules and an optional imported word list.
func loadConfig(configPath, rulesPath, wordsPath string) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if rulesPath != "" {
		groups, err := rules.Load(rulesPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Groups = append(cfg.Groups, groups...)
	}

	if wordsPath != "" {
		f, err := os.Open(wordsPath)
		if err != nil {
			return config.Config{}, err
		}
		words, err := wordlist.Import(f)
		f.Close()
		if err != nil {
			return config.Config{}, err
		}
		cfg.Groups = append(cfg.Groups, config.KeywordGroup{
			ID:      uuid.NewString(),
			Name:    "imported",
			Color:   "#b8860b",
			Words:   words,
			Enabled: true,
		})
	}

	return cfg, nil
}
