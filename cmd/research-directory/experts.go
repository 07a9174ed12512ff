// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-directory/internal/filter"
	"github.com/pdiddy/research-directory/internal/format"
	"github.com/pdiddy/research-directory/internal/order"
	"github.com/pdiddy/research-directory/internal/query"
)

// --- experts subcommand ---

var expertsCmd = &cobra.Command{
	Use:   "experts",
	Short: "List experts matching search terms and filters",
	Long: `Experts filters the expert directory by name search, college, department,
degree, and a minimum citation count, then sorts and prints one page of
results.

--since sets the citation window: citations are counted from that year on,
and any year at or before 1999 counts lifetime citations.`,
	Args: cobra.NoArgs,
	RunE: runExperts,
}

func runExperts(cmd *cobra.Command, args []string) error {
	f, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	sort, err := sortFlag(cmd, order.ExpertKeys)
	if err != nil {
		return err
	}
	win, err := windowFlags(cmd)
	if err != nil {
		return err
	}

	fl := cmd.Flags()
	req := query.ExpertRequest{Sort: sort, Window: win}
	req.Search, _ = fl.GetString("search")
	req.Colleges, _ = fl.GetStringSlice("college")
	req.Departments, _ = fl.GetStringSlice("department")
	req.Degrees, _ = fl.GetStringSlice("degree")
	req.MinCitations, _ = fl.GetInt("min-citations")
	req.RecencyYear, _ = fl.GetInt("since")

	st := loadState(cmd.Context())
	res := query.Experts(st.Snapshot, req)
	if f == format.Table {
		format.ExpertsTable(res.Items, res.Total, req.RecencyYear, cmd.OutOrStdout())
		return nil
	}
	return format.Structured(f, res, cmd.OutOrStdout())
}

// --- facets subcommand ---

var expertFacetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "List the colleges, departments, and degrees present in the directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		st := loadState(cmd.Context())
		facets := query.ExpertFacetsOf(st.Snapshot.Experts)
		if f != format.Table {
			return format.Structured(f, facets, cmd.OutOrStdout())
		}
		w := cmd.OutOrStdout()
		for _, c := range facets.Colleges {
			fmt.Fprintln(w, c.Name)
			for _, d := range c.Departments {
				fmt.Fprintf(w, "  %s\n", d)
			}
		}
		if len(facets.Degrees) > 0 {
			fmt.Fprintln(w, "\nDegrees:")
			for _, d := range facets.Degrees {
				fmt.Fprintf(w, "  %s\n", d)
			}
		}
		return nil
	},
}

// --- profile subcommand ---

var profileCmd = &cobra.Command{
	Use:   "profile <expert-id>",
	Short: "Show one expert's merged profile",
	Long: `Profile merges an expert's list record with their detail record and
prints expertise, keywords, publication count, and similar researchers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		since, _ := cmd.Flags().GetInt("since")

		st := loadState(cmd.Context())
		p, err := query.ExpertProfile(st.Snapshot, args[0])
		if err != nil {
			return fmt.Errorf("expert %s: %w", args[0], err)
		}
		if f == format.Table {
			format.ProfileText(p, since, cmd.OutOrStdout())
			return nil
		}
		return format.Structured(f, p, cmd.OutOrStdout())
	},
}

// --- publications subcommand ---

var publicationsCmd = &cobra.Command{
	Use:   "publications <expert-id>",
	Short: "List an expert's publications",
	Long: `Publications filters one expert's publications by title search, minimum
citations within the --since window, and a publication year range, then
sorts them (newest first by default).

--format csl writes CSL-YAML suitable for citation managers.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublications,
}

func runPublications(cmd *cobra.Command, args []string) error {
	f, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	sort, err := sortFlag(cmd, order.PublicationKeys)
	if err != nil {
		return err
	}
	win, err := windowFlags(cmd)
	if err != nil {
		return err
	}

	fl := cmd.Flags()
	req := query.PublicationRequest{Sort: sort, Window: win}
	req.Search, _ = fl.GetString("search")
	req.MinCitations, _ = fl.GetInt("min-citations")
	req.RecencyYear, _ = fl.GetInt("since")
	req.StartYear, _ = fl.GetInt("start-year")
	req.EndYear, _ = fl.GetInt("end-year")

	st := loadState(cmd.Context())
	p, err := query.ExpertProfile(st.Snapshot, args[0])
	if err != nil {
		return fmt.Errorf("expert %s: %w", args[0], err)
	}
	res := query.Publications(p, req)

	switch f {
	case format.Table:
		format.PublicationsTable(res.Items, res.Total, req.RecencyYear, cmd.OutOrStdout())
		return nil
	case format.CSL:
		return format.WriteCSL(p.ID, res.Items, cmd.OutOrStdout())
	default:
		return format.Structured(f, res, cmd.OutOrStdout())
	}
}

func addCitationFlags(cmd *cobra.Command) {
	cmd.Flags().Int("min-citations", 0, "minimum citations within the --since window")
	cmd.Flags().Int("since", 0, "count citations from this year on (0 or <=1999: all time)")
}

func init() {
	expertsCmd.Flags().String("search", "", "search expert names")
	expertsCmd.Flags().StringSlice("college", nil, "restrict to colleges (repeatable or comma-separated)")
	expertsCmd.Flags().StringSlice("department", nil, "restrict to departments")
	expertsCmd.Flags().StringSlice("degree", nil, "restrict to degrees")
	addCitationFlags(expertsCmd)
	addSortFlag(expertsCmd, order.ExpertKeys, order.NameAsc)
	addWindowFlags(expertsCmd)
	addFormatFlag(expertsCmd, format.Table, format.JSON, format.YAML)

	addFormatFlag(expertFacetsCmd, format.Table, format.JSON, format.YAML)
	expertsCmd.AddCommand(expertFacetsCmd)

	profileCmd.Flags().Int("since", 0, "count citations from this year on (0 or <=1999: all time)")
	addFormatFlag(profileCmd, format.Table, format.JSON, format.YAML)

	publicationsCmd.Flags().String("search", "", "search publication titles")
	addCitationFlags(publicationsCmd)
	publicationsCmd.Flags().Int("start-year", filter.DefaultStartYear, "earliest publication year")
	publicationsCmd.Flags().Int("end-year", filter.DefaultEndYear, "latest publication year")
	addSortFlag(publicationsCmd, order.PublicationKeys, order.YearDesc)
	addWindowFlags(publicationsCmd)
	addFormatFlag(publicationsCmd, format.Table, format.JSON, format.YAML, format.CSL)

	rootCmd.AddCommand(expertsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(publicationsCmd)
}
