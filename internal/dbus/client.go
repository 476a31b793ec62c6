package dbus

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Client raises and closes notifications on the session bus. It talks to
// whichever daemon owns org.freedesktop.Notifications.
type Client struct {
	conn    *dbus.Conn
	obj     dbus.BusObject
	appName string
}

// NewClient connects to the session bus.
func NewClient(appName string) (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{
		conn:    conn,
		obj:     conn.Object(DBusBusName, DBusPath),
		appName: appName,
	}, nil
}

// Notify sends a notification and returns the id assigned by the server.
func (c *Client) Notify(ctx context.Context, n *DBusNotification) (uint32, error) {
	hints := n.Hints
	if hints == nil {
		hints = map[string]dbus.Variant{}
	}
	actions := n.Actions
	if actions == nil {
		actions = []string{}
	}
	appName := n.AppName
	if appName == "" {
		appName = c.appName
	}

	var id uint32
	err := c.obj.CallWithContext(ctx, DBusInterface+".Notify", 0,
		appName, n.ReplacesID, n.AppIcon, n.Summary, n.Body, actions, hints, n.ExpireTimeout,
	).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to call Notify: %w", err)
	}
	return id, nil
}

// CloseNotification asks the server to close id.
func (c *Client) CloseNotification(ctx context.Context, id uint32) error {
	if err := c.obj.CallWithContext(ctx, DBusInterface+".CloseNotification", 0, id).Err; err != nil {
		return fmt.Errorf("failed to call CloseNotification: %w", err)
	}
	return nil
}

// ServerInformation queries the running server.
func (c *Client) ServerInformation(ctx context.Context) (ServerInfo, error) {
	var info ServerInfo
	err := c.obj.CallWithContext(ctx, DBusInterface+".GetServerInformation", 0).
		Store(&info.Name, &info.Vendor, &info.Version, &info.SpecVersion)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("failed to call GetServerInformation: %w", err)
	}
	return info, nil
}

// Closed subscribes to NotificationClosed. Call it before Notify so a fast
// close is not missed. The returned wait function blocks until id closes
// or ctx is done.
func (c *Client) Closed() (wait func(ctx context.Context, id uint32) (CloseReason, error), err error) {
	err = c.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(DBusPath),
		dbus.WithMatchInterface(DBusInterface),
		dbus.WithMatchMember("NotificationClosed"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to NotificationClosed: %w", err)
	}
	ch := make(chan *dbus.Signal, 16)
	c.conn.Signal(ch)

	return func(ctx context.Context, id uint32) (CloseReason, error) {
		defer c.conn.RemoveSignal(ch)
		for {
			select {
			case <-ctx.Done():
				return CloseReasonUndefined, ctx.Err()
			case sig, ok := <-ch:
				if !ok {
					return CloseReasonUndefined, fmt.Errorf("connection closed")
				}
				if gotID, reason, ok := parseClosed(sig); ok && gotID == id {
					return reason, nil
				}
			}
		}
	}, nil
}

func parseClosed(sig *dbus.Signal) (uint32, CloseReason, bool) {
	if sig == nil || sig.Name != DBusInterface+".NotificationClosed" || len(sig.Body) < 2 {
		return 0, 0, false
	}
	id, ok := sig.Body[0].(uint32)
	if !ok {
		return 0, 0, false
	}
	reason, ok := sig.Body[1].(uint32)
	if !ok {
		return 0, 0, false
	}
	return id, CloseReason(reason), true
}

// Close closes the bus connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
