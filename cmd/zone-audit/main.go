package main

import (
	"fmt"
	"os"

	"github.com/bryanCE/zoneaudit/internal/cli"

	"github.com/spf13/cobra"
)

var version = "dev" // Will be set by ldflags during build

func main() {
	rootCmd := &cobra.Command{
		Use:   "zone-audit",
		Short: "Route53 zone auditor - find dangling and misconfigured DNS records",
		Long: `Audits a Route53 hosted zone's record set against live DNS resolution.
Follows CNAME chains, detects loops, and flags records that no longer resolve,
a common indicator of subdomain-takeover exposure.`,
		Version: version,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.NewAuditCommand())
	rootCmd.AddCommand(cli.NewZonesCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
