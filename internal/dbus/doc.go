// Package dbus implements the org.freedesktop.Notifications D-Bus interface.
// The server turns Notify calls into banner requests (summary as title,
// body as subtitle) and reports banner teardown back as NotificationClosed.
// A Monitor mirrors another daemon's notifications as banners without
// owning the bus name, and a Client drives a running server from the
// command line.
package dbus
