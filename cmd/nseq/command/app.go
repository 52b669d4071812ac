package command

import (
	"io"

	"github.com/nzai/nseq/config"
	"github.com/nzai/nseq/notifiers"
	"github.com/nzai/nseq/proxies"
	"github.com/nzai/nseq/renderers"
	"github.com/nzai/nseq/schedulers"
	"github.com/nzai/nseq/sources"
	"github.com/nzai/nseq/stores"
	"github.com/nzai/nseq/utils"
	"github.com/nzai/nseq/viewers"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// app everything a command needs, built from config
type app struct {
	config   *config.Config
	fetcher  *proxies.Fetcher
	source   *sources.YahooFinance
	store    *stores.Memory
	notifier *notifiers.Nsq
	console  *renderers.Console
	flag     *schedulers.Flag
	viewer   *viewers.Viewer
	undo     func()
}

// loadConfig parse the config file, or use defaults when none is given
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	cfg, err := config.Parse(path)
	if err != nil {
		zap.L().Error("parse config failed", zap.Error(err), zap.String("path", path))
		return nil, err
	}

	return cfg, nil
}

func newApp(cfg *config.Config, w io.Writer) (*app, error) {
	logger, err := utils.NewLogger(cfg.Log)
	if err != nil {
		zap.L().Error("init logger failed", zap.Error(err), zap.String("level", cfg.Log.Level))
		return nil, err
	}
	undo := zap.ReplaceGlobals(logger)

	endpoints, err := cfg.Endpoints()
	if err != nil {
		undo()
		zap.L().Error("parse proxies failed", zap.Error(err))
		return nil, err
	}

	downloader := utils.NewDownloader(cfg.RequestTimeout(), cfg.UserAgent)
	fetcher := proxies.NewFetcher(downloader, endpoints,
		proxies.WithTimeout(cfg.RequestTimeout()),
		proxies.WithUserAgent(cfg.UserAgent))
	source := sources.NewYahooFinance(fetcher, cfg.Yahoo)

	store, err := stores.NewMemory()
	if err != nil {
		undo()
		return nil, err
	}

	a := &app{
		config:  cfg,
		fetcher: fetcher,
		source:  source,
		store:   store,
		console: renderers.NewConsole(w),
		flag:    schedulers.NewFlag(),
		undo:    undo,
	}

	var renderer renderers.Renderer = a.console
	if cfg.Nsq.Enabled {
		a.notifier, err = notifiers.NewNsq(cfg.Nsq)
		if err != nil {
			a.Close()
			return nil, err
		}

		renderer = renderers.NewMulti(a.console, a.notifier)
	}

	a.viewer = viewers.NewViewer(source, renderer, store,
		schedulers.WithInterval(cfg.RefreshInterval()),
		schedulers.WithMaxFailed(cfg.MaxFailedAttempts),
		schedulers.WithVisibility(a.flag))

	return a, nil
}

// Close stop live updates and release the store and the notifier
func (a *app) Close() error {
	if a.viewer != nil {
		a.viewer.Close()
	}

	err := a.store.Close()
	if a.notifier != nil {
		err = multierr.Append(err, a.notifier.Close())
	}

	if err != nil {
		zap.L().Warn("close app failed", zap.Error(err))
	}

	_ = zap.L().Sync()
	a.undo()

	return err
}
