package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/output"
)

var layoutOpts struct {
	bannerOpts
	width    float64
	height   float64
	top      float64
	bottom   float64
	format   string
	template string
}

var layoutCmd = &cobra.Command{
	Use:   "layout TITLE [SUBTITLE]",
	Short: "Preview where a banner would be placed",
	Long: `Lay out a banner on a virtual screen and print its frames without
showing anything. Text is measured with a fixed-advance approximation of
the system font, so real widths differ slightly.

Examples:
  alertctl layout "Saved" "Your changes are stored" --icon done
  alertctl layout "Copied" --kind title --format json
  alertctl layout "Saved" --template '{{.Variant}} {{box .IconFrame}}{{"\n"}}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	addBannerFlags(layoutCmd, &layoutOpts.bannerOpts)
	layoutCmd.Flags().Float64Var(&layoutOpts.width, "width", 1920,
		"Screen width")
	layoutCmd.Flags().Float64Var(&layoutOpts.height, "height", 1080,
		"Screen height")
	layoutCmd.Flags().Float64Var(&layoutOpts.top, "top", -1,
		"Top safe inset (default: display.top_inset)")
	layoutCmd.Flags().Float64Var(&layoutOpts.bottom, "bottom", -1,
		"Bottom safe inset (default: display.bottom_inset)")
	layoutCmd.Flags().StringVarP(&layoutOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	layoutCmd.Flags().StringVar(&layoutOpts.template, "template", "",
		"Custom Go template for plain output")
}

func runLayout(cmd *cobra.Command, args []string) error {
	subtitle := ""
	if len(args) > 1 {
		subtitle = args[1]
	}
	n, err := layoutOpts.notification(args[0], subtitle)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(layoutOpts.format)
	if err != nil {
		return err
	}
	opts := output.DefaultFormatterOptions()
	opts.Template = layoutOpts.template
	formatter, err := output.NewFormatter(format, opts)
	if err != nil {
		return err
	}

	insets := geom.Insets{Top: cfg.Display.TopInset, Bottom: cfg.Display.BottomInset}
	if layoutOpts.top >= 0 {
		insets.Top = layoutOpts.top
	}
	if layoutOpts.bottom >= 0 {
		insets.Bottom = layoutOpts.bottom
	}

	report, err := output.Preview(n.Request(), output.PreviewOptions{
		Config: cfg,
		Host:   geom.Size{Width: layoutOpts.width, Height: layoutOpts.height},
		Insets: insets,
	})
	if err != nil {
		return err
	}
	return formatter.Format(os.Stdout, []output.Report{report})
}
