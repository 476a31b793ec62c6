package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/alertkit/internal/haptic"
	"github.com/jmylchreest/alertkit/internal/present"
	"github.com/jmylchreest/alertkit/internal/theme"
	"github.com/jmylchreest/alertkit/internal/tui"
)

var demoOpts struct {
	haptic bool
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Launch the interactive terminal demo",
	Long: `Launch a terminal demo that presents banners over the screen.

Key bindings:
  s           Success bar with a checkmark
  e           Error bar with a cross
  i           Info bar without an icon
  t           Title-only banner
  x           Dismiss all banners
  click       Tap a banner to dismiss it
  ?           Show help
  q           Quit`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().BoolVar(&demoOpts.haptic, "haptic", false,
		"Play the configured impact when a bar appears")
}

func runDemo(cmd *cobra.Command, args []string) error {
	var impact present.Haptic
	if demoOpts.haptic && cfg.Haptic.Enabled {
		player := haptic.NewPlayer(logger)
		defer player.Close()
		player.SetVolume(float64(cfg.Haptic.Volume) / 100)

		impactor := haptic.NewImpactor(player, cfg.Haptic.Sound, logger)
		if err := impactor.Preload(); err != nil {
			logger.Warn("failed to load haptic sound, using tick", "error", err)
			impactor = haptic.NewImpactor(player, "", logger)
		}
		impact = impactor
	}

	return tui.Run(tui.RunOptions{
		Config:     cfg,
		Haptic:     impact,
		Appearance: theme.ResolveAppearance(cfg.Scheme(), lipgloss.HasDarkBackground()),
		Logger:     logger,
	})
}
