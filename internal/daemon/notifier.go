package daemon

import (
	"log/slog"
	"sync"
	"time"

	godbus "github.com/godbus/dbus/v5"

	"github.com/jmylchreest/alertkit/internal/dbus"
)

// NotificationLevel indicates the severity of an internal notification.
type NotificationLevel int

const (
	// NotificationLevelInfo is shown as a short title-only banner.
	NotificationLevelInfo NotificationLevel = iota
	// NotificationLevelWarning is shown as a bar with a cross.
	NotificationLevelWarning
	// NotificationLevelError is a critical bar with a cross.
	NotificationLevelError
)

// InternalNotifier raises banners about alertd's own events through the
// normal notification path. Repeats of the same event are rate limited.
type InternalNotifier struct {
	mu     sync.Mutex
	logger *slog.Logger
	now    func() time.Time

	// Handler for creating notifications
	notifyHandler func(notification *dbus.DBusNotification) uint32

	lastNotifyTime map[string]time.Time // key -> last notification time
	minInterval    time.Duration

	enabled bool
}

// NewInternalNotifier creates a new InternalNotifier.
func NewInternalNotifier(logger *slog.Logger) *InternalNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &InternalNotifier{
		logger:         logger,
		now:            time.Now,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second,
		enabled:        true,
	}
}

// SetNotifyHandler sets the function to call when creating a notification.
func (n *InternalNotifier) SetNotifyHandler(handler func(notification *dbus.DBusNotification) uint32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifyHandler = handler
}

// SetEnabled enables or disables internal notifications.
func (n *InternalNotifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetMinInterval sets the minimum interval between notifications with the
// same key.
func (n *InternalNotifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify raises an internal notification unless one with the same key was
// raised within the minimum interval. It returns the notification id, or
// zero when nothing was raised.
func (n *InternalNotifier) Notify(key, summary, body string, level NotificationLevel) uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.enabled {
		return 0
	}
	if n.notifyHandler == nil {
		n.logger.Debug("internal notification skipped: no handler", "summary", summary)
		return 0
	}

	now := n.now()
	if last, ok := n.lastNotifyTime[key]; ok && now.Sub(last) < n.minInterval {
		n.logger.Debug("internal notification rate-limited", "key", key, "summary", summary)
		return 0
	}
	n.lastNotifyTime[key] = now

	notification := &dbus.DBusNotification{
		AppName:       "alertd",
		Summary:       summary,
		Body:          body,
		Hints:         map[string]godbus.Variant{"category": godbus.MakeVariant("alertkit." + key)},
		ExpireTimeout: -1,
	}
	switch level {
	case NotificationLevelInfo:
		notification.Hints["urgency"] = godbus.MakeVariant(byte(dbus.UrgencyLow))
		notification.Hints[dbus.HintKind] = godbus.MakeVariant("title")
	case NotificationLevelWarning:
		notification.Hints["urgency"] = godbus.MakeVariant(byte(dbus.UrgencyNormal))
		notification.Hints[dbus.HintIcon] = godbus.MakeVariant("error")
		notification.ExpireTimeout = 4000
	case NotificationLevelError:
		notification.Hints["urgency"] = godbus.MakeVariant(byte(dbus.UrgencyCritical))
		notification.ExpireTimeout = 6000
	}

	n.logger.Debug("sending internal notification", "key", key, "summary", summary, "level", level)
	return n.notifyHandler(notification)
}

// NotifyConfigReloaded announces a successful configuration reload.
func (n *InternalNotifier) NotifyConfigReloaded() uint32 {
	return n.Notify("config-reload", "Configuration reloaded", "", NotificationLevelInfo)
}

// NotifyConfigError reports a configuration file that failed to load. The
// previous configuration stays in effect.
func (n *InternalNotifier) NotifyConfigError(err error) uint32 {
	return n.Notify("config-error", "Configuration error", err.Error(), NotificationLevelWarning)
}

// NotifyThemeError reports a theme that could not be loaded.
func (n *InternalNotifier) NotifyThemeError(err error) uint32 {
	return n.Notify("theme-error", "Theme error", err.Error(), NotificationLevelWarning)
}

// NotifyHapticError reports an impact sound that could not be decoded.
func (n *InternalNotifier) NotifyHapticError(err error) uint32 {
	return n.Notify("haptic-error", "Haptic sound unavailable", err.Error(), NotificationLevelWarning)
}

// NotifyDisplayError reports that banners cannot be shown.
func (n *InternalNotifier) NotifyDisplayError(err error) uint32 {
	return n.Notify("display-error", "Display unavailable", err.Error(), NotificationLevelError)
}
