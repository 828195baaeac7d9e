package cli

import (
	"fmt"

	"go.uber.org/zap"

	"StopLossCowboy/internal/collector"
	"StopLossCowboy/internal/config"
	"StopLossCowboy/internal/notifier"
	"StopLossCowboy/internal/recorder"
	"StopLossCowboy/internal/stoploss"
)

// newProvider picks the price data source named in the config.
func newProvider(cfg *config.Config) (collector.Provider, error) {
	ds := cfg.DataSource
	switch ds.Provider {
	case config.ProviderYahoo:
		return collector.NewYahooProvider(ds.BaseURL, cfg.Proxy), nil
	case config.ProviderFinanceGo:
		return collector.NewFinanceGoProvider(), nil
	case config.ProviderVsTrader:
		return collector.NewVsTraderProvider(ds.BaseURL, ds.APIKey, cfg.Proxy), nil
	case config.ProviderMock:
		return &collector.MockProvider{Price: ds.MockPrice}, nil
	}
	return nil, fmt.Errorf("unknown provider %q", ds.Provider)
}

// openRecorder returns the SQLite recorder, or a no-op one when no path is
// configured or the database cannot be opened.
func openRecorder(cfg *config.Config, logger *zap.Logger) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
	if err != nil {
		logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		return recorder.NewNoopRecorder()
	}
	return sr
}

// newDriver wires provider, processor, recorder and notifier. The caller
// must Close the returned recorder.
func newDriver(cfg *config.Config, logger *zap.Logger) (*stoploss.Driver, recorder.Recorder, error) {
	provider, err := newProvider(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("data source", zap.String("provider", provider.Name()))

	series := collector.NewSeriesFetcher(provider)
	d := stoploss.NewDriver(stoploss.NewProcessor(series, cfg.DataSource.FetchTimeout), logger)

	rec := openRecorder(cfg, logger)
	d.Recorder = rec
	if cfg.Telegram.BotToken != "" {
		d.Notifier = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}
	return d, rec, nil
}
