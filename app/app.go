package app

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap/zapcore"

	"github.com/ogefest/fbrowser/internal/logging"
	"github.com/ogefest/fbrowser/models"
)

// Runtime bundles a configured model with the services around it.
type Runtime struct {
	Config  *models.AppConfig
	Model   *Model
	History *History    // nil when history is disabled
	Session *SessionLog // nil when log.dir is empty

	stopTracking func()
}

// Bootstrap loads the configuration at configPath, sets up logging, the
// session log and the history store, and creates the model. Log entries are
// also copied to mirror when it is not nil.
func Bootstrap(configPath string, mirror io.Writer) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Config: cfg}

	logCfg := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if cfg.Log.Dir != "" {
		sl, err := NewSessionLog(cfg.Log.Dir, cfg.Log.RetentionDays, mirror)
		if err != nil {
			return nil, err
		}
		rt.Session = sl
		logCfg.Output = zapcore.AddSync(sl)
	} else if mirror != nil {
		logCfg.Output = zapcore.AddSync(mirror)
	}
	logging.Init(logCfg)

	opts := []Option{WithLocale(cfg.Browser.Locale)}
	if rt.Session != nil {
		opts = append(opts, WithJournal(rt.Session))
	}

	if cfg.History.Enabled {
		h, err := OpenHistory(cfg.History.DBPath)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.History = h
		opts = append(opts, WithJournal(h))
	}

	rt.Model = New(opts...)
	if rt.History != nil {
		rt.stopTracking = rt.History.Track(rt.Model)
	}

	logging.L().Info("runtime ready",
		logging.String("config", configPath),
		logging.String("locale", cfg.Browser.Locale))
	return rt, nil
}

// StartPath picks the first directory to open: explicit wins, then the
// configured start path, then the last visited directory, then home.
func (rt *Runtime) StartPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if rt.Config.Browser.StartPath != "" {
		return rt.Config.Browser.StartPath
	}
	if rt.History != nil {
		last, err := rt.History.LastVisited(context.Background())
		if err != nil {
			logging.L().Warn("failed to read last visited directory", logging.Err(err))
		} else if last != "" {
			return last
		}
	}
	paths := PathsToHome()
	return paths[len(paths)-1]
}

// Close releases the history store and the session log. Logging falls back
// to stderr afterwards.
func (rt *Runtime) Close() error {
	var errs []error
	if rt.stopTracking != nil {
		rt.stopTracking()
		rt.stopTracking = nil
	}
	if rt.History != nil {
		errs = append(errs, rt.History.Close())
		rt.History = nil
	}
	if rt.Session != nil {
		errs = append(errs, rt.Session.Close())
		rt.Session = nil
		logging.InitDefault()
	}
	return errors.Join(errs...)
}
