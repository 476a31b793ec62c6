package dbus

import (
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/alertkit/internal/banner"
	"github.com/jmylchreest/alertkit/internal/icon"
	"github.com/jmylchreest/alertkit/internal/present"
)

// CloseReason represents the reason for closing a notification.
// These values are defined by the freedesktop.org notification specification.
type CloseReason uint32

const (
	// CloseReasonExpired indicates the notification expired (timeout reached).
	CloseReasonExpired CloseReason = 1
	// CloseReasonDismissed indicates the user dismissed the notification.
	CloseReasonDismissed CloseReason = 2
	// CloseReasonClosed indicates the notification was closed via CloseNotification.
	CloseReasonClosed CloseReason = 3
	// CloseReasonUndefined is reserved by the freedesktop protocol.
	CloseReasonUndefined CloseReason = 4
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	case CloseReasonUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// CloseReasonFor maps what dismissed a banner to the reason reported to
// clients.
func CloseReasonFor(cause present.Cause) CloseReason {
	switch cause {
	case present.CauseTimer:
		return CloseReasonExpired
	case present.CauseTap:
		return CloseReasonDismissed
	case present.CauseExternal:
		return CloseReasonClosed
	default:
		return CloseReasonUndefined
	}
}

// Urgency levels from the urgency hint.
const (
	UrgencyLow      = 0
	UrgencyNormal   = 1
	UrgencyCritical = 2
)

// Vendor hints understood by alertkit.
const (
	HintKind = "x-alertkit-kind" // "bar" or "title"
	HintIcon = "x-alertkit-icon" // "done", "error" or "none"
)

// DBusNotification represents an incoming D-Bus Notify call.
// It contains the raw parameters from the org.freedesktop.Notifications.Notify method.
type DBusNotification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // Alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// Action represents a notification action with key and label.
type Action struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ParsedActions converts the D-Bus action array to structured form.
// D-Bus actions are passed as alternating key/label pairs.
func (n *DBusNotification) ParsedActions() []Action {
	actions := make([]Action, 0, len(n.Actions)/2)
	for i := 0; i+1 < len(n.Actions); i += 2 {
		actions = append(actions, Action{
			Key:   n.Actions[i],
			Label: n.Actions[i+1],
		})
	}
	return actions
}

// HasDefaultAction reports whether a tap should invoke the "default"
// action before the banner closes.
func (n *DBusNotification) HasDefaultAction() bool {
	for _, a := range n.ParsedActions() {
		if a.Key == "default" {
			return true
		}
	}
	return false
}

// Urgency extracts the urgency hint from the notification.
// Returns UrgencyNormal if not specified.
func (n *DBusNotification) Urgency() int {
	if v, ok := n.Hints["urgency"]; ok {
		if b, ok := v.Value().(byte); ok {
			return int(b)
		}
	}
	return UrgencyNormal
}

// Category extracts the category hint from the notification.
// Returns empty string if not specified.
func (n *DBusNotification) Category() string {
	return n.stringHint("category")
}

// Variant returns the banner kind requested by the x-alertkit-kind hint.
// Anything but "title" is a bar.
func (n *DBusNotification) Variant() present.Variant {
	if strings.EqualFold(n.stringHint(HintKind), "title") {
		return present.VariantTitle
	}
	return present.VariantBar
}

// IconKind returns the status icon for the notification. An explicit
// x-alertkit-icon hint wins; otherwise critical urgency and error
// categories show a cross and completion categories a checkmark.
func (n *DBusNotification) IconKind() icon.Kind {
	if s := n.stringHint(HintIcon); s != "" {
		if k, err := icon.ParseKind(s); err == nil {
			return k
		}
	}
	if n.Urgency() == UrgencyCritical {
		return icon.KindError
	}
	category := n.Category()
	switch {
	case strings.HasSuffix(category, ".error"):
		return icon.KindError
	case strings.HasSuffix(category, ".complete"):
		return icon.KindDone
	}
	return icon.KindNone
}

// Request converts the notification into a banner request. The summary is
// the title and the body the subtitle. A positive expire timeout replaces
// the visible duration and zero keeps the banner until it is dismissed.
func (n *DBusNotification) Request() present.Request {
	req := present.Request{
		Variant: n.Variant(),
		Content: banner.Content{
			Title:    n.Summary,
			Subtitle: n.Body,
			Icon:     n.IconKind(),
		},
	}
	switch {
	case n.ExpireTimeout == 0:
		req.Sticky = true
	case n.ExpireTimeout > 0:
		req.Timeout = time.Duration(n.ExpireTimeout) * time.Millisecond
	}
	return req
}

func (n *DBusNotification) stringHint(key string) string {
	if v, ok := n.Hints[key]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

// ServerCapabilities lists the capabilities advertised by alertd.
var ServerCapabilities = []string{
	"actions",          // Tapping invokes the "default" action
	"body",             // Body text becomes the subtitle
	"x-alertkit-kind",  // Banner kind hint
	"x-alertkit-icons", // Status icon hint
}

// ServerInfo contains information about the notification server.
type ServerInfo struct {
	Name        string // "alertd"
	Vendor      string // "alertkit"
	Version     string // Build version
	SpecVersion string // "1.2"
}

// DefaultServerInfo returns the default server information.
func DefaultServerInfo() ServerInfo {
	return ServerInfo{
		Name:        "alertd",
		Vendor:      "alertkit",
		Version:     "0.0.1", // Will be replaced by build-time version
		SpecVersion: "1.2",
	}
}
