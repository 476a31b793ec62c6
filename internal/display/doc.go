// Package display presents banners on a Wayland desktop with GTK4 and
// layer-shell. A MonitorHost stands in for the host surface; every attached
// banner gets its own overlay window positioned from the banner's frame.
package display
