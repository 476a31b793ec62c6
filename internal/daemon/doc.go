// Package daemon holds the pieces of alertd that sit between the D-Bus
// server and the display, such as the banners alertd raises about itself.
package daemon
