// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-directory/internal/filter"
	"github.com/pdiddy/research-directory/internal/format"
	"github.com/pdiddy/research-directory/internal/order"
	"github.com/pdiddy/research-directory/internal/query"
	"github.com/pdiddy/research-directory/internal/server"
)

// --- opportunities subcommand ---

var opportunitiesCmd = &cobra.Command{
	Use:   "opportunities",
	Short: "List open funding opportunities",
	Long: `Opportunities lists funding opportunities that are open now: posted on or
before today and due today or later (or without a due date).

--agency selects an agency and every agency beneath it. --bucket picks a
preset award range by index (see "opportunities facets"); --min-funding and
--max-funding set a custom range instead.`,
	Args: cobra.NoArgs,
	RunE: runOpportunities,
}

func runOpportunities(cmd *cobra.Command, args []string) error {
	f, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	sort, err := sortFlag(cmd, order.OpportunityKeys)
	if err != nil {
		return err
	}
	win, err := windowFlags(cmd)
	if err != nil {
		return err
	}

	fl := cmd.Flags()
	req := query.OpportunityRequest{Sort: sort, Window: win}
	req.Now = time.Now()
	req.Search, _ = fl.GetString("search")
	req.Agency, _ = fl.GetString("agency")
	req.Eligibility, _ = fl.GetStringSlice("eligibility")
	req.Bucket, _ = fl.GetInt("bucket")
	if _, ok := filter.Bucket(req.Bucket); !ok {
		return fmt.Errorf("--bucket %d out of range 0-%d", req.Bucket, len(filter.FundingBuckets)-1)
	}
	if fl.Changed("min-funding") {
		v, _ := fl.GetFloat64("min-funding")
		req.FundingMin = &v
	}
	if fl.Changed("max-funding") {
		v, _ := fl.GetFloat64("max-funding")
		req.FundingMax = &v
	}

	st := loadState(cmd.Context())
	res := query.Opportunities(st.Snapshot, st.Agencies, req)
	if f == format.Table {
		format.OpportunitiesTable(res.Items, res.Total, st.Agencies.Name, cmd.OutOrStdout())
		return nil
	}
	return format.Structured(f, res, cmd.OutOrStdout())
}

// --- facets subcommand ---

var opportunityFacetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "Count open opportunities per funding bucket and agency",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		st := loadState(cmd.Context())
		facets := query.OpportunityFacetsOf(st, time.Now())
		if f != format.Table {
			return format.Structured(f, facets, cmd.OutOrStdout())
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%d open opportunities\n\nFunding:\n", facets.Open)
		for _, b := range facets.Funding {
			fmt.Fprintf(w, "  [%d] %-16s %d\n", b.Index, b.Label, b.Count)
		}
		fmt.Fprintln(w, "\nAgencies:")
		format.AgencyTree(facets.Agencies, w)
		return nil
	},
}

// --- opportunity subcommand ---

var opportunityCmd = &cobra.Command{
	Use:   "opportunity <opp-id>",
	Short: "Show one opportunity with its description and link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		st := loadState(cmd.Context())
		o, err := query.OpportunityDetail(st.Snapshot, args[0])
		if err != nil {
			return fmt.Errorf("opportunity %s: %w", args[0], err)
		}
		name := st.Agencies.Name(o.AgencyID)
		if f == format.Table {
			format.OpportunityText(o, name, cmd.OutOrStdout())
			return nil
		}
		view := server.OpportunityView{Opportunity: o, AgencyName: name, Open: o.IsOpen(time.Now())}
		if o.Description != nil {
			view.DescriptionText = format.Description(*o.Description)
		}
		return format.Structured(f, view, cmd.OutOrStdout())
	},
}

// --- agencies subcommand ---

var agenciesCmd = &cobra.Command{
	Use:   "agencies",
	Short: "Print the agency hierarchy with open opportunity counts",
	Long: `Agencies prints every agency under its parent. Each line shows the open
opportunities posted by that agency and, in parentheses, the total
including every agency beneath it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		st := loadState(cmd.Context())
		tree := query.OpportunityFacetsOf(st, time.Now()).Agencies
		if f == format.Table {
			format.AgencyTree(tree, cmd.OutOrStdout())
			return nil
		}
		return format.Structured(f, tree, cmd.OutOrStdout())
	},
}

func init() {
	fl := opportunitiesCmd.Flags()
	fl.String("search", "", "search titles and opportunity numbers")
	fl.String("agency", "", "agency id; includes its sub-agencies")
	fl.Int("bucket", 0, "funding preset index (0: any)")
	fl.Float64("min-funding", 0, "minimum estimated funding")
	fl.Float64("max-funding", 0, "maximum estimated funding")
	fl.StringSlice("eligibility", nil, "applicant types (any match)")
	addSortFlag(opportunitiesCmd, order.OpportunityKeys, order.DueAsc)
	addWindowFlags(opportunitiesCmd)
	addFormatFlag(opportunitiesCmd, format.Table, format.JSON, format.YAML)

	addFormatFlag(opportunityFacetsCmd, format.Table, format.JSON, format.YAML)
	opportunitiesCmd.AddCommand(opportunityFacetsCmd)

	addFormatFlag(opportunityCmd, format.Table, format.JSON, format.YAML)
	addFormatFlag(agenciesCmd, format.Table, format.JSON, format.YAML)

	rootCmd.AddCommand(opportunitiesCmd)
	rootCmd.AddCommand(opportunityCmd)
	rootCmd.AddCommand(agenciesCmd)
}
