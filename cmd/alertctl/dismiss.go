package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/alertkit/internal/dbus"
)

var dismissCmd = &cobra.Command{
	Use:   "dismiss ID",
	Short: "Close a banner",
	Long: `Ask the notification daemon to close the banner with the given id.
The banner plays its exit animation and is reported as closed.`,
	Args: cobra.ExactArgs(1),
	RunE: runDismiss,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the running notification daemon",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(dismissCmd)
	rootCmd.AddCommand(infoCmd)
}

func runDismiss(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || id == 0 {
		return fmt.Errorf("invalid banner id %q", args[0])
	}

	client, err := dbus.NewClient("alertctl")
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.CloseNotification(ctx, uint32(id))
}

func runInfo(cmd *cobra.Command, args []string) error {
	client, err := dbus.NewClient("alertctl")
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	info, err := client.ServerInformation(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s (%s), notification spec %s\n", info.Name, info.Version, info.Vendor, info.SpecVersion)
	return nil
}
