// Package main is the entry point for the alertd banner daemon.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/alertkit/internal/config"
	"github.com/jmylchreest/alertkit/internal/daemon"
	"github.com/jmylchreest/alertkit/internal/dbus"
	"github.com/jmylchreest/alertkit/internal/display"
	"github.com/jmylchreest/alertkit/internal/haptic"
	"github.com/jmylchreest/alertkit/internal/present"
)

const (
	appID   = "io.github.jmylchreest.alertd"
	appName = "alertd"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	monitorMode := flag.Bool("monitor", false, "Mirror another notification daemon as banners instead of owning the bus name")
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/alertkit/alertkit.toml)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("alertd version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	runDaemonMode(*configPath, *monitorMode, logger)
}

// runDaemonMode runs alertd as the session's notification daemon, or in
// mirror mode beside another daemon that keeps the bus name.
func runDaemonMode(configPath string, mirror bool, logger *slog.Logger) {
	logger.Info("starting alertd", "version", version, "mirror", mirror)

	if configPath == "" {
		p, err := config.Path()
		if err != nil {
			logger.Error("failed to get config path", "error", err)
			os.Exit(1)
		}
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	app := adw.NewApplication(appID, 0)

	// Shared state between the GTK main loop and signal handlers
	var (
		dbusServer       *dbus.NotificationServer
		monitor          *dbus.Monitor
		displayManager   *display.Manager
		player           *haptic.Player
		configWatcher    *config.Watcher
		internalNotifier *daemon.InternalNotifier
		running          atomic.Bool
	)

	shutdown := func() {
		if configWatcher != nil {
			_ = configWatcher.Stop()
			configWatcher = nil
		}
		if displayManager != nil {
			displayManager.Stop()
		}
		if dbusServer != nil {
			_ = dbusServer.Stop()
		}
		if monitor != nil {
			_ = monitor.Stop()
		}
		if player != nil {
			player.Close()
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		glib.IdleAdd(func() {
			if running.Load() {
				shutdown()
			}
			app.Quit()
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		internalNotifier = daemon.NewInternalNotifier(logger)

		player = haptic.NewPlayer(logger)
		impactor, hapticErr := newImpactor(cfg, player, logger)

		displayManager = display.NewManager(&app.Application, cfg, impactor, logger)
		if err := displayManager.Start(); err != nil {
			logger.Error("failed to start display manager", "error", err)
			app.Quit()
			return
		}

		if mirror {
			monitor = dbus.NewMonitor(logger)
			err = startMirror(monitor, displayManager, internalNotifier, logger)
		} else {
			dbusServer = dbus.NewNotificationServer(logger)
			err = startServer(dbusServer, displayManager, internalNotifier, logger)
		}
		if err != nil {
			logger.Error("failed to start notification source", "error", err)
			displayManager.Stop()
			app.Quit()
			return
		}

		if hapticErr != nil {
			internalNotifier.NotifyHapticError(hapticErr)
		}

		configWatcher, err = config.NewWatcher(configPath,
			func(newConfig *config.Config) {
				glib.IdleAdd(func() {
					if newConfig.Theme.Name != cfg.Theme.Name {
						logger.Info("theme changed", "theme", newConfig.Theme.Name)
					}
					displayManager.UpdateConfig(newConfig)

					impactor, err := newImpactor(newConfig, player, logger)
					displayManager.SetHaptic(impactor)
					if err != nil {
						internalNotifier.NotifyHapticError(err)
					}

					cfg = newConfig
					internalNotifier.NotifyConfigReloaded()
				})
			},
			func(err error) {
				glib.IdleAdd(func() {
					internalNotifier.NotifyConfigError(err)
				})
			},
			logger,
		)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else if err := configWatcher.Start(); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		}

		logger.Info("alertd ready", "dbus_interface", dbus.DBusInterface, "mirror", mirror)

		// GTK applications quit when their last window closes; banners come
		// and go, so a hidden window keeps the application alive.
		keepAliveWindow := gtk.NewWindow()
		keepAliveWindow.SetApplication(&app.Application)
		keepAliveWindow.SetDefaultSize(1, 1)
		keepAliveWindow.SetDecorated(false)
		keepAliveWindow.SetVisible(false)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		shutdown()
		running.Store(false)
	})

	status := app.Run(os.Args[:1])
	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}

	logger.Info("alertd stopped")
}

// startServer claims the notification bus name. Notify calls arrive on
// the D-Bus goroutine; banners live on the GTK main loop.
func startServer(server *dbus.NotificationServer, manager *display.Manager, notifier *daemon.InternalNotifier, logger *slog.Logger) error {
	server.SetServerInfo(dbus.ServerInfo{
		Name:        appName,
		Vendor:      "alertkit",
		Version:     version,
		SpecVersion: "1.2",
	})
	server.SetRequestHandler(func(id uint32, req present.Request) {
		glib.IdleAdd(func() {
			if err := manager.Show(id, req); err != nil {
				logger.Error("failed to show banner", "id", id, "error", err)
				if err := server.CloseWithReason(id, dbus.CloseReasonUndefined); err != nil {
					logger.Warn("failed to emit close signal", "id", id, "error", err)
				}
			}
		})
	})
	server.SetCloseHandler(func(id uint32) {
		glib.IdleAdd(func() { manager.Close(id) })
	})
	manager.SetCloseCallback(server.BannerClosed)

	if err := server.Start(); err != nil {
		return err
	}
	notifier.SetNotifyHandler(server.Raise)
	return nil
}

// mirrorIDBase keeps the daemon's own banners clear of mirrored ids, which
// the other daemon allocates from 1 upwards.
const mirrorIDBase = 1 << 31

// startMirror shows banners for another daemon's notifications. Closes are
// that daemon's to report, so banner teardown is only logged.
func startMirror(monitor *dbus.Monitor, manager *display.Manager, notifier *daemon.InternalNotifier, logger *slog.Logger) error {
	show := func(id uint32, req present.Request) {
		glib.IdleAdd(func() {
			if err := manager.Show(id, req); err != nil {
				logger.Error("failed to mirror banner", "id", id, "error", err)
			}
		})
	}
	monitor.SetRequestHandler(show)
	monitor.SetCloseHandler(func(id uint32) {
		glib.IdleAdd(func() { manager.Close(id) })
	})
	manager.SetCloseCallback(func(id uint32, cause present.Cause) {
		logger.Debug("mirrored banner closed", "id", id, "cause", cause)
	})

	if err := monitor.Start(); err != nil {
		return err
	}

	var lastID atomic.Uint32
	lastID.Store(mirrorIDBase)
	notifier.SetNotifyHandler(func(n *dbus.DBusNotification) uint32 {
		id := lastID.Add(1)
		show(id, n.Request())
		return id
	})
	return nil
}

// newImpactor returns the configured impact, or nil when haptics are off.
// A sound that fails to decode still yields an impactor; playback failures
// are logged per impact.
func newImpactor(cfg *config.Config, player *haptic.Player, logger *slog.Logger) (present.Haptic, error) {
	if !cfg.Haptic.Enabled {
		return nil, nil
	}
	player.SetVolume(float64(cfg.Haptic.Volume) / 100)
	impactor := haptic.NewImpactor(player, cfg.Haptic.Sound, logger)
	if err := impactor.Preload(); err != nil {
		return impactor, fmt.Errorf("failed to load haptic sound %q: %w", cfg.Haptic.Sound, err)
	}
	return impactor, nil
}
