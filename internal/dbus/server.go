package dbus

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/alertkit/internal/present"
)

const (
	// DBusInterface is the notification interface name.
	DBusInterface = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"
	// DBusBusName is the bus name to claim.
	DBusBusName = "org.freedesktop.Notifications"
)

// introspectXML describes the exported object. Argument names follow the
// freedesktop notification protocol.
const introspectXML = `<node>
	<interface name="` + DBusInterface + `">
		<method name="GetCapabilities">
			<arg name="capabilities" type="as" direction="out"/>
		</method>
		<method name="GetServerInformation">
			<arg name="name" type="s" direction="out"/>
			<arg name="vendor" type="s" direction="out"/>
			<arg name="version" type="s" direction="out"/>
			<arg name="spec_version" type="s" direction="out"/>
		</method>
		<method name="Notify">
			<arg name="app_name" type="s" direction="in"/>
			<arg name="replaces_id" type="u" direction="in"/>
			<arg name="app_icon" type="s" direction="in"/>
			<arg name="summary" type="s" direction="in"/>
			<arg name="body" type="s" direction="in"/>
			<arg name="actions" type="as" direction="in"/>
			<arg name="hints" type="a{sv}" direction="in"/>
			<arg name="expire_timeout" type="i" direction="in"/>
			<arg name="id" type="u" direction="out"/>
		</method>
		<method name="CloseNotification">
			<arg name="id" type="u" direction="in"/>
		</method>
		<signal name="NotificationClosed">
			<arg name="id" type="u"/>
			<arg name="reason" type="u"/>
		</signal>
		<signal name="ActionInvoked">
			<arg name="id" type="u"/>
			<arg name="action_key" type="s"/>
		</signal>
	</interface>` + introspect.IntrospectDataString + `</node>`

// RequestHandler receives the banner request raised for a notification id.
// A request reusing an id replaces the banner shown for it.
type RequestHandler func(id uint32, req present.Request)

// CloseHandler is called when a client asks for a banner to be closed.
type CloseHandler func(id uint32)

// NotificationServer owns org.freedesktop.Notifications on the session bus
// and turns every Notify call into a banner request. Ids stay tracked until
// the display reports the banner torn down, which is when clients hear
// NotificationClosed.
type NotificationServer struct {
	conn   *dbus.Conn
	logger *slog.Logger
	info   ServerInfo
	lastID atomic.Uint32

	onRequest RequestHandler
	onClose   CloseHandler

	mu    sync.Mutex
	shown map[uint32]*DBusNotification
}

// NewNotificationServer creates a server that has not yet claimed the bus.
func NewNotificationServer(logger *slog.Logger) *NotificationServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationServer{
		logger: logger,
		info:   DefaultServerInfo(),
		shown:  make(map[uint32]*DBusNotification),
	}
}

// SetRequestHandler sets where banner requests go.
func (s *NotificationServer) SetRequestHandler(handler RequestHandler) {
	s.onRequest = handler
}

// SetCloseHandler sets the handler for CloseNotification calls.
func (s *NotificationServer) SetCloseHandler(handler CloseHandler) {
	s.onClose = handler
}

// SetServerInfo sets what GetServerInformation reports.
func (s *NotificationServer) SetServerInfo(info ServerInfo) {
	s.info = info
}

// Start exports the notification object on a private session bus
// connection and claims the well-known name.
func (s *NotificationServer) Start() error {
	if s.conn != nil {
		return errors.New("server already running")
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	if err := conn.Export(busObject{s}, DBusPath, DBusInterface); err != nil {
		conn.Close()
		return fmt.Errorf("failed to export notification object: %w", err)
	}
	if err := conn.Export(introspect.Introspectable(introspectXML), DBusPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to export introspection: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue|dbus.NameFlagReplaceExisting)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return fmt.Errorf("bus name %s already taken", DBusBusName)
	}

	s.conn = conn
	s.logger.Info("D-Bus notification server started", "name", DBusBusName, "path", DBusPath)
	return nil
}

// Stop releases the name and closes the connection. It is safe to call
// more than once.
func (s *NotificationServer) Stop() error {
	if s.conn == nil {
		return nil
	}
	conn := s.conn
	s.conn = nil

	if _, err := conn.ReleaseName(DBusBusName); err != nil {
		s.logger.Warn("failed to release bus name", "error", err)
	}
	s.logger.Info("D-Bus notification server stopped")
	return conn.Close()
}

// Raise shows a banner for n and returns its id. A positive ReplacesID
// keeps the id so the display replaces the banner in place. The daemon also
// raises its own notifications here.
func (s *NotificationServer) Raise(n *DBusNotification) uint32 {
	id := n.ReplacesID
	if id == 0 {
		id = s.lastID.Add(1)
	}
	req := n.Request()

	s.mu.Lock()
	s.shown[id] = n
	s.mu.Unlock()

	s.logger.Debug("banner requested",
		"id", id,
		"app", n.AppName,
		"variant", req.Variant,
		"icon", req.Content.Icon,
		"timeout", req.Timeout,
		"sticky", req.Sticky,
	)
	if s.onRequest != nil {
		s.onRequest(id, req)
	}
	return id
}

// BannerClosed reports that the banner for id was torn down. A tap on a
// notification with a "default" action invokes it first; the close reason
// follows from what dismissed the banner.
func (s *NotificationServer) BannerClosed(id uint32, cause present.Cause) {
	n, ok := s.forget(id)
	if !ok {
		return
	}
	if cause == present.CauseTap && n.HasDefaultAction() {
		if err := s.EmitActionInvoked(id, "default"); err != nil {
			s.logger.Warn("failed to emit ActionInvoked signal", "id", id, "error", err)
		}
	}
	if err := s.EmitNotificationClosed(id, CloseReasonFor(cause)); err != nil {
		s.logger.Warn("failed to emit NotificationClosed signal", "id", id, "error", err)
	}
}

// Showing reports whether id has a banner that is not yet torn down.
func (s *NotificationServer) Showing(id uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.shown[id]
	return ok
}

// ShowingCount returns the number of ids with a banner on screen.
func (s *NotificationServer) ShowingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shown)
}

func (s *NotificationServer) forget(id uint32) (*DBusNotification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.shown[id]
	delete(s.shown, id)
	return n, ok
}

// busObject carries the methods exported on the bus, keeping the server's
// Go API off the wire.
type busObject struct {
	s *NotificationServer
}

func (o busObject) GetCapabilities() ([]string, *dbus.Error) {
	return ServerCapabilities, nil
}

func (o busObject) GetServerInformation() (name, vendor, version, specVersion string, err *dbus.Error) {
	info := o.s.info
	return info.Name, info.Vendor, info.Version, info.SpecVersion, nil
}

func (o busObject) Notify(appName string, replacesID uint32, appIcon, summary, body string,
	actions []string, hints map[string]dbus.Variant, expireTimeout int32,
) (uint32, *dbus.Error) {
	return o.s.Raise(&DBusNotification{
		AppName:       appName,
		ReplacesID:    replacesID,
		AppIcon:       appIcon,
		Summary:       summary,
		Body:          body,
		Actions:       actions,
		Hints:         hints,
		ExpireTimeout: expireTimeout,
	}), nil
}

// CloseNotification starts the exit animation; NotificationClosed follows
// from BannerClosed once the banner is gone.
func (o busObject) CloseNotification(id uint32) *dbus.Error {
	if o.s.Showing(id) && o.s.onClose != nil {
		o.s.onClose(id)
	}
	return nil
}
