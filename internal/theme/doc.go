// Package theme resolves banner appearance: the light or dark content color,
// background materials and the GTK CSS themes bundled with alertkit. User
// themes in ~/.config/alertkit/themes/ override bundled ones by name.
package theme
