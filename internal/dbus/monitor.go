package dbus

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

// maxPendingCalls bounds Notify calls still waiting for the daemon's reply.
const maxPendingCalls = 256

// Monitor mirrors another notification daemon. It watches Notify and
// CloseNotification calls on the session bus without owning the name and
// turns them into banner requests and dismissals. Nothing is reported back
// to clients; the owning daemon does that.
type Monitor struct {
	conn   *dbus.Conn
	logger *slog.Logger

	// owner is the unique name of the daemon being mirrored. When it is
	// known, banners take the id from its Notify reply so later
	// CloseNotification calls find them.
	owner   string
	pending map[callKey]*DBusNotification

	onRequest RequestHandler
	onClose   CloseHandler
}

// callKey identifies a method call by caller and serial; replies carry the
// same pair as destination and reply serial.
type callKey struct {
	caller string
	serial uint32
}

// NewMonitor creates a monitor that is not yet listening.
func NewMonitor(logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		logger:  logger,
		pending: make(map[callKey]*DBusNotification),
	}
}

// SetRequestHandler sets where mirrored banner requests go.
func (m *Monitor) SetRequestHandler(handler RequestHandler) {
	m.onRequest = handler
}

// SetCloseHandler sets the handler for observed CloseNotification calls.
func (m *Monitor) SetCloseHandler(handler CloseHandler) {
	m.onClose = handler
}

// Start opens a private connection and turns it into a monitor. Handlers
// are called from the monitor's own goroutine.
func (m *Monitor) Start() error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	m.conn = conn

	// A monitor connection cannot make calls, so ask for the owner first.
	if err := conn.BusObject().Call("org.freedesktop.DBus.GetNameOwner", 0, DBusBusName).Store(&m.owner); err != nil {
		m.logger.Warn("no notification daemon to mirror yet; ids will be derived from content", "error", err)
		m.owner = ""
	}

	rules := m.matchRules()
	err = conn.BusObject().Call("org.freedesktop.DBus.Monitoring.BecomeMonitor", 0, rules, uint32(0)).Err
	if err != nil {
		m.logger.Warn("BecomeMonitor unavailable, falling back to eavesdropping", "error", err)
		for _, rule := range rules {
			if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule+",eavesdrop='true'").Err; err != nil {
				conn.Close()
				return fmt.Errorf("failed to add match rule (eavesdrop may require permissions): %w", err)
			}
		}
	}

	ch := make(chan *dbus.Message, 100)
	conn.Eavesdrop(ch)
	go func() {
		for msg := range ch {
			m.dispatch(msg)
		}
	}()

	m.logger.Info("mirroring notification daemon", "owner", m.owner)
	return nil
}

func (m *Monitor) matchRules() []string {
	rules := []string{fmt.Sprintf("type='method_call',interface='%s'", DBusInterface)}
	if m.owner != "" {
		rules = append(rules,
			fmt.Sprintf("type='method_return',sender='%s'", m.owner),
			fmt.Sprintf("type='error',sender='%s'", m.owner),
		)
	}
	return rules
}

// dispatch handles one observed message.
func (m *Monitor) dispatch(msg *dbus.Message) {
	switch msg.Type {
	case dbus.TypeMethodCall:
		if headerString(msg, dbus.FieldInterface) != DBusInterface {
			return
		}
		switch headerString(msg, dbus.FieldMember) {
		case "Notify":
			m.observeNotify(msg)
		case "CloseNotification":
			m.observeClose(msg)
		}

	case dbus.TypeMethodReply, dbus.TypeError:
		if m.owner == "" || headerString(msg, dbus.FieldSender) != m.owner {
			return
		}
		serial, _ := msg.Headers[dbus.FieldReplySerial].Value().(uint32)
		key := callKey{caller: headerString(msg, dbus.FieldDestination), serial: serial}
		n, ok := m.pending[key]
		if !ok {
			return
		}
		delete(m.pending, key)
		if msg.Type == dbus.TypeError || len(msg.Body) == 0 {
			return
		}
		if id, ok := msg.Body[0].(uint32); ok {
			m.raise(id, n)
		}
	}
}

func (m *Monitor) observeNotify(msg *dbus.Message) {
	n, err := notificationFromArgs(msg.Body)
	if err != nil {
		m.logger.Warn("ignoring malformed Notify call", "error", err)
		return
	}
	if m.owner == "" {
		m.raise(contentID(n), n)
		return
	}
	if len(m.pending) >= maxPendingCalls {
		m.logger.Warn("dropping unanswered Notify calls", "count", len(m.pending))
		clear(m.pending)
	}
	m.pending[callKey{caller: headerString(msg, dbus.FieldSender), serial: msg.Serial()}] = n
}

func (m *Monitor) observeClose(msg *dbus.Message) {
	if len(msg.Body) == 0 {
		return
	}
	id, ok := msg.Body[0].(uint32)
	if !ok {
		return
	}
	m.logger.Debug("mirroring close", "id", id)
	if m.onClose != nil {
		m.onClose(id)
	}
}

func (m *Monitor) raise(id uint32, n *DBusNotification) {
	m.logger.Debug("mirroring notification", "id", id, "app", n.AppName)
	if m.onRequest != nil {
		m.onRequest(id, n.Request())
	}
}

// Stop closes the monitor connection.
func (m *Monitor) Stop() error {
	if m.conn == nil {
		return nil
	}
	conn := m.conn
	m.conn = nil
	return conn.Close()
}

// notificationFromArgs decodes the Notify argument list
// (susssasa{sv}i). Actions and hints may be missing or mistyped; the
// scalar arguments may not.
func notificationFromArgs(args []any) (*DBusNotification, error) {
	if len(args) < 8 {
		return nil, fmt.Errorf("expected 8 arguments, got %d", len(args))
	}
	n := &DBusNotification{}
	var ok [5]bool
	n.AppName, ok[0] = args[0].(string)
	n.ReplacesID, ok[1] = args[1].(uint32)
	n.AppIcon, ok[2] = args[2].(string)
	n.Summary, ok[3] = args[3].(string)
	n.Body, ok[4] = args[4].(string)
	for _, good := range ok {
		if !good {
			return nil, errors.New("unexpected argument types")
		}
	}
	n.Actions, _ = args[5].([]string)
	n.Hints, _ = args[6].(map[string]dbus.Variant)
	if timeout, ok := args[7].(int32); ok {
		n.ExpireTimeout = timeout
	} else {
		n.ExpireTimeout = -1
	}
	return n, nil
}

// contentID derives a stable id when the daemon's reply cannot be seen. A
// replacement keeps its id; anything else is hashed from its content.
func contentID(n *DBusNotification) uint32 {
	if n.ReplacesID > 0 {
		return n.ReplacesID
	}
	h := fnv.New32a()
	for _, s := range []string{n.AppName, n.Summary, n.Body} {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum32()
}

func headerString(msg *dbus.Message, field dbus.HeaderField) string {
	v, ok := msg.Headers[field]
	if !ok {
		return ""
	}
	s, _ := v.Value().(string)
	return s
}
