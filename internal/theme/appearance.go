package theme

import (
	"fmt"
	"image/color"
	"strings"
)

// Appearance is the light or dark interface style a banner is drawn for.
type Appearance int

const (
	Light Appearance = iota
	Dark
)

// String returns the string representation of Appearance.
func (a Appearance) String() string {
	if a == Dark {
		return "dark"
	}
	return "light"
}

// Scheme is a configured color scheme preference.
type Scheme string

const (
	SchemeSystem Scheme = "system"
	SchemeLight  Scheme = "light"
	SchemeDark   Scheme = "dark"
)

// ParseScheme validates a color scheme name. The empty string means system.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case "", SchemeSystem:
		return SchemeSystem, nil
	case SchemeLight:
		return SchemeLight, nil
	case SchemeDark:
		return SchemeDark, nil
	default:
		return SchemeSystem, fmt.Errorf("invalid color scheme %q, must be one of: system, light, dark", s)
	}
}

// ResolveAppearance picks the appearance for a scheme. systemDark reports
// whether the desktop currently prefers a dark style and only matters for
// SchemeSystem.
func ResolveAppearance(scheme Scheme, systemDark bool) Appearance {
	switch scheme {
	case SchemeLight:
		return Light
	case SchemeDark:
		return Dark
	default:
		if systemDark {
			return Dark
		}
		return Light
	}
}

// ContentColor returns the default color of banner text and icons.
func ContentColor(a Appearance) color.RGBA {
	if a == Dark {
		return color.RGBA{R: 127, G: 127, B: 129, A: 255}
	}
	return color.RGBA{R: 88, G: 87, B: 88, A: 255}
}

// BackgroundColor returns the fill used behind banner content when no blur
// effect is available.
func BackgroundColor(a Appearance, blur BlurStyle) color.RGBA {
	base := color.RGBA{R: 246, G: 246, B: 247, A: 255}
	if a == Dark {
		base = color.RGBA{R: 38, G: 38, B: 41, A: 255}
	}
	base.A = blur.Opacity()
	return base
}

// BlurStyle names the material behind a banner.
type BlurStyle string

const (
	BlurUltraThin BlurStyle = "ultra-thin"
	BlurThin      BlurStyle = "thin"
	BlurMaterial  BlurStyle = "material"
	BlurThick     BlurStyle = "thick"
	BlurChrome    BlurStyle = "chrome"
)

// DefaultBlurStyle is the material used when none is configured.
const DefaultBlurStyle = BlurMaterial

var blurOpacity = map[BlurStyle]uint8{
	BlurUltraThin: 150,
	BlurThin:      190,
	BlurMaterial:  220,
	BlurThick:     240,
	BlurChrome:    250,
}

// ParseBlurStyle validates a blur style name. The empty string maps to the
// default material.
func ParseBlurStyle(s string) (BlurStyle, error) {
	b := BlurStyle(strings.ToLower(strings.TrimSpace(s)))
	if b == "" {
		return DefaultBlurStyle, nil
	}
	if _, ok := blurOpacity[b]; !ok {
		return DefaultBlurStyle, fmt.Errorf("invalid blur style %q, must be one of: ultra-thin, thin, material, thick, chrome", s)
	}
	return b, nil
}

// Opacity returns the background alpha approximating the material.
func (b BlurStyle) Opacity() uint8 {
	if a, ok := blurOpacity[b]; ok {
		return a
	}
	return blurOpacity[DefaultBlurStyle]
}

// CSSClass returns the style class applied to banner windows.
func (b BlurStyle) CSSClass() string {
	if _, ok := blurOpacity[b]; !ok {
		b = DefaultBlurStyle
	}
	return "blur-" + string(b)
}

// OverrideCSS returns rules for settings that come from configuration
// rather than the theme file. It is loaded after the theme.
func OverrideCSS(barRadius, titleRadius float64) string {
	return fmt.Sprintf(".alert-banner { border-radius: %gpx; }\n"+
		".alert-banner.alert-title-only { border-radius: %gpx; }\n", barRadius, titleRadius)
}
