// =============================================================================
// internal/cli/commands.go - CLI command definitions
// =============================================================================
package cli

import (
	"fmt"
	"os"
	"regexp"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bryanCE/zoneaudit/internal/audit"
	"github.com/bryanCE/zoneaudit/internal/output"
	"github.com/bryanCE/zoneaudit/internal/resolve"
	"github.com/bryanCE/zoneaudit/internal/route53"
	"github.com/bryanCE/zoneaudit/pkg/nameservers"
)

// NewAuditCommand creates the audit subcommand.
func NewAuditCommand() *cobra.Command {
	var (
		profileFlag  string
		zoneFlag     string
		privateFlag  bool
		resolverFlag string
		silentFlag   bool
		csvFlag      string
		csvScopeFlag string
		limitFlag    int
		ignoreFlag   []string
		noFollowFlag bool
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit a hosted zone's records against live DNS",
		Long: `Enumerate a Route53 hosted zone's A and CNAME records, follow CNAME chains
through the zone, and check each terminus against live DNS resolution.
Records that no longer resolve are candidates for dangling-DNS cleanup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if silentFlag {
				logrus.SetLevel(logrus.ErrorLevel)
			}
			log := logrus.NewEntry(logrus.StandardLogger())

			patterns := make([]*regexp.Regexp, 0, len(ignoreFlag))
			for _, pattern := range ignoreFlag {
				re, err := regexp.Compile(pattern)
				if err != nil {
					return fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
				}
				patterns = append(patterns, re)
			}

			if err := validateScope(csvScopeFlag); err != nil {
				return err
			}

			nameserver, err := nameservers.Resolve(resolverFlag)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			client, err := route53.NewClient(ctx, profileFlag)
			if err != nil {
				return err
			}
			zone, err := client.FindZone(ctx, zoneFlag, privateFlag)
			if err != nil {
				return err
			}
			records, err := client.ListRecords(ctx, zone.ID)
			if err != nil {
				return err
			}

			oracle := resolve.NewResolver(resolve.Options{Nameserver: nameserver})
			auditor := audit.NewAuditor(oracle, log)

			summary, err := auditor.Run(ctx, records, audit.Options{
				IgnorePatterns: patterns,
				Limit:          limitFlag,
				NoFollow:       noFollowFlag,
			})
			if err != nil {
				return err
			}

			if !silentFlag {
				output.PrintResults(os.Stdout, summary.All)
			}
			output.PrintSummary(os.Stdout, summary)

			if csvFlag != "" {
				if err := output.ExportCSV(csvFlag, scopedResults(summary, csvScopeFlag)); err != nil {
					return fmt.Errorf("writing CSV: %w", err)
				}
				fmt.Printf("\n📄 Records written to %s (scope: %s)\n", csvFlag, csvScopeFlag)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&profileFlag, "profile", "", "AWS CLI profile name")
	cmd.Flags().StringVar(&zoneFlag, "zone", "", "DNS zone name to audit")
	cmd.Flags().BoolVar(&privateFlag, "private", false, "Match a private hosted zone")
	cmd.Flags().StringVar(&resolverFlag, "resolver", "", "DNS resolver to use: IP, ip:port or provider name (default: Google public DNS)")
	cmd.Flags().BoolVar(&silentFlag, "silent", false, "Only print the summary")
	cmd.Flags().StringVar(&csvFlag, "csv", "", "Output CSV file path")
	cmd.Flags().StringVar(&csvScopeFlag, "csv-scope", "all", "Which records to export (all, resolved, unresolved)")
	cmd.Flags().IntVar(&limitFlag, "limit", 0, "Limit the number of records to process, excluding ignored (0 = no limit)")
	cmd.Flags().StringArrayVar(&ignoreFlag, "ignore", nil, "Regex pattern(s) to ignore records by name; repeatable")
	cmd.Flags().BoolVar(&noFollowFlag, "no-follow", false, "Resolve source and immediate target only instead of following CNAME chains")
	cobra.CheckErr(cmd.MarkFlagRequired("zone"))

	return cmd
}

// NewZonesCommand creates the zones subcommand.
func NewZonesCommand() *cobra.Command {
	var profileFlag string

	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List hosted zones visible to the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := route53.NewClient(ctx, profileFlag)
			if err != nil {
				return err
			}
			zones, err := client.ListZones(ctx)
			if err != nil {
				return err
			}

			return output.PrintZones(os.Stdout, zones)
		},
	}

	cmd.Flags().StringVar(&profileFlag, "profile", "", "AWS CLI profile name")

	return cmd
}

func validateScope(scope string) error {
	switch scope {
	case "all", "resolved", "unresolved":
		return nil
	}
	return fmt.Errorf("invalid csv scope %q (want all, resolved or unresolved)", scope)
}

func scopedResults(summary *audit.Summary, scope string) []audit.Result {
	switch scope {
	case "resolved":
		return summary.Resolved
	case "unresolved":
		return summary.Unresolved
	default:
		return summary.All
	}
}
