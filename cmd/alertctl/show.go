package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	godbus "github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/alertkit/internal/dbus"
	"github.com/jmylchreest/alertkit/internal/icon"
)

// bannerOpts are the flags shared by show and layout.
type bannerOpts struct {
	kind    string
	icon    string
	timeout time.Duration
	sticky  bool
}

var showOpts struct {
	bannerOpts
	app     string
	replace uint32
	wait    bool
	actions bool
}

var showCmd = &cobra.Command{
	Use:   "show TITLE [SUBTITLE]",
	Short: "Raise a banner",
	Long: `Raise a banner through the session notification daemon.

The title is sent as the notification summary and the subtitle as the body.
Any freedesktop notification daemon will display it; alertd additionally
honours the banner kind and icon.

Examples:
  # A bar with a checkmark
  alertctl show "Saved" "Your changes are stored" --icon done

  # A title-only banner
  alertctl show "Copied to clipboard" --kind title

  # Keep the banner until it is tapped and report how it closed
  alertctl show "Deploy finished" --sticky --wait`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	addBannerFlags(showCmd, &showOpts.bannerOpts)
	showCmd.Flags().StringVar(&showOpts.app, "app", "alertctl",
		"Application name sent with the notification")
	showCmd.Flags().Uint32Var(&showOpts.replace, "replace", 0,
		"Replace the banner with this id")
	showCmd.Flags().BoolVarP(&showOpts.wait, "wait", "w", false,
		"Wait for the banner to close and print the reason")
	showCmd.Flags().BoolVar(&showOpts.actions, "tap-action", false,
		"Register a default action so a tap is reported as ActionInvoked")
}

func addBannerFlags(cmd *cobra.Command, opts *bannerOpts) {
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "bar",
		"Banner kind (bar, title)")
	cmd.Flags().StringVarP(&opts.icon, "icon", "i", "none",
		"Status icon (done, error, none)")
	cmd.Flags().DurationVarP(&opts.timeout, "timeout", "t", 0,
		"Visible duration (default: configured duration)")
	cmd.Flags().BoolVar(&opts.sticky, "sticky", false,
		"Keep the banner until it is tapped or closed")
}

// notification builds the Notify call for the given title and subtitle.
func (o bannerOpts) notification(title, subtitle string) (*dbus.DBusNotification, error) {
	if o.kind != "bar" && o.kind != "title" {
		return nil, fmt.Errorf("unknown banner kind %q (want bar or title)", o.kind)
	}
	kind, err := icon.ParseKind(o.icon)
	if err != nil {
		return nil, err
	}
	if o.timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative")
	}

	n := &dbus.DBusNotification{
		Summary: title,
		Body:    subtitle,
		Hints: map[string]godbus.Variant{
			dbus.HintKind: godbus.MakeVariant(o.kind),
			dbus.HintIcon: godbus.MakeVariant(kind.String()),
		},
		ExpireTimeout: -1,
	}
	switch {
	case o.sticky:
		n.ExpireTimeout = 0
	case o.timeout > 0:
		n.ExpireTimeout = int32(max(o.timeout.Milliseconds(), 1))
	}
	return n, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	subtitle := ""
	if len(args) > 1 {
		subtitle = args[1]
	}
	n, err := showOpts.notification(args[0], subtitle)
	if err != nil {
		return err
	}
	n.AppName = showOpts.app
	n.ReplacesID = showOpts.replace
	if showOpts.actions {
		n.Actions = []string{"default", "Open"}
	}

	client, err := dbus.NewClient(showOpts.app)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var wait func(context.Context, uint32) (dbus.CloseReason, error)
	if showOpts.wait {
		if wait, err = client.Closed(); err != nil {
			return err
		}
	}

	callCtx, callCancel := context.WithTimeout(ctx, 5*time.Second)
	defer callCancel()
	started := time.Now()
	id, err := client.Notify(callCtx, n)
	if err != nil {
		return err
	}
	fmt.Println(id)

	if wait == nil {
		return nil
	}
	reason, err := wait(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s after %s\n", reason, humanize.RelTime(started, time.Now(), "", ""))
	return nil
}
