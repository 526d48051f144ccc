package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/newsdeck/pkg/config"
	"github.com/umputun/newsdeck/pkg/domain"
	"github.com/umputun/newsdeck/pkg/feed"
	"github.com/umputun/newsdeck/pkg/repository"
	"github.com/umputun/newsdeck/pkg/scheduler"
	"github.com/umputun/newsdeck/pkg/scoring"
	"github.com/umputun/newsdeck/pkg/session"
	"github.com/umputun/newsdeck/server"
)

// Opts with all CLI options
type Opts struct {
	Config string  `short:"c" long:"config" env:"CONFIG" default:"newsdeck.yml" description:"configuration file"`
	Dump   bool    `long:"dump" description:"load the feed once, print cards and exit"`
	Width  float64 `long:"width" default:"375" description:"display width used for card heights in dump mode"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	lgr.Printf("[INFO] starting newsdeck version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	lgr.Print("[INFO] shutdown complete")
}

// run wires all components and serves until ctx is done, or dumps the feed in dump mode
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Store.DSN,
		MaxOpenConns:    cfg.Store.MaxOpenConns,
		MaxIdleConns:    cfg.Store.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Store.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to init repositories: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	store, closeStore, err := makeOverrideStore(ctx, cfg, repos)
	if err != nil {
		return err
	}
	defer closeStore()

	sess := session.New(makeFetcher(cfg), store, repos.History, session.Config{
		RecentDomainsLimit: cfg.Scoring.RecentDomainsLimit,
		Scorer:             &scoring.Scorer{RecencyPenalty: cfg.GetRecencyPenalty(), Now: time.Now},
	})
	defer sess.Close()

	if opts.Dump {
		if err := sess.Load(ctx); err != nil {
			return fmt.Errorf("failed to load feed: %w", err)
		}
		dumpCards(os.Stdout, sess.State().Cards, opts.Width, cfg.GetLayout())
		return nil
	}

	sched := scheduler.NewScheduler(sess, repos.History, scheduler.Config{
		RetryInterval: cfg.Fetch.RetryInterval,
		PruneInterval: cfg.History.PruneInterval,
		Retention:     cfg.History.Retention,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, sess, repos.History, store, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// overrideStore keeps source flags and can reset them
type overrideStore interface {
	session.OverrideStore
	server.Overrides
}

// makeOverrideStore picks redis when configured, sqlite otherwise
func makeOverrideStore(ctx context.Context, cfg *config.Config, repos *repository.Repositories) (overrideStore, func(), error) {
	if cfg.Store.RedisURL == "" {
		return repos.Source, func() {}, nil
	}

	rdb, err := repository.NewRedisClient(cfg.Store.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to make redis client: %w", err)
	}
	store := repository.NewRedisOverrides(rdb, cfg.Store.RedisPrefix)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	lgr.Printf("[INFO] source overrides kept in redis")
	return store, func() {
		if err := store.Close(); err != nil {
			lgr.Printf("[WARN] failed to close redis client: %v", err)
		}
	}, nil
}

// makeFetcher combines the json endpoints and rss publishers present in config
func makeFetcher(cfg *config.Config) *feed.Fetcher {
	var client *feed.Client
	if cfg.Fetch.ContentURL != "" {
		client = feed.NewClient(cfg.Fetch.SourcesURL, cfg.Fetch.ContentURL, cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
	}

	var rss *feed.RSSFetcher
	if pubs := cfg.Publishers(); len(pubs) > 0 {
		rss = feed.NewRSSFetcher(pubs, feed.RSSOptions{
			Timeout:       cfg.Fetch.Timeout,
			UserAgent:     cfg.Fetch.UserAgent,
			MaxConcurrent: cfg.Fetch.MaxConcurrent,
			RateLimit:     cfg.Fetch.RateLimit,
		})
	}

	return feed.NewFetcher(client, rss)
}

// dumpCards prints one line per card followed by its items
func dumpCards(w io.Writer, cards []domain.Card, width float64, m domain.Metrics) {
	var total float64
	for i, c := range cards {
		h := c.EstimatedHeight(width, m)
		total += h
		header := string(c.Kind)
		if c.Axis != "" {
			header += "/" + string(c.Axis)
		}
		if c.Title != "" {
			header += " " + fmt.Sprintf("%q", c.Title)
		}
		fmt.Fprintf(w, "%3d. %s, height %.0f\n", i+1, header, h)
		for _, it := range c.Items {
			title := strings.TrimSpace(it.Content.Title)
			if title == "" {
				title = it.Content.URL
			}
			fmt.Fprintf(w, "     - [%s] %s (%.2f)\n", it.Source.Name, title, it.Score)
		}
	}
	fmt.Fprintf(w, "%d cards, total height %.0f\n", len(cards), total)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
