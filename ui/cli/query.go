package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	catalogx "github.com/tanpawarit/Chative-College-Advisor/agent/catalog"
	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
	toolx "github.com/tanpawarit/Chative-College-Advisor/agent/tool"
)

func newCollegesCmd(opts *rootOptions) *cobra.Command {
	var (
		major    string
		minRank  int
		maxRank  int
		location string
		skills   []string
		extras   []string
	)

	cmd := &cobra.Command{
		Use:   "colleges",
		Short: "Search the college catalog without the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs := map[string]any{"major": major}
			if cmd.Flags().Changed("min-rank") {
				toolArgs["min_rank"] = minRank
			}
			if cmd.Flags().Changed("max-rank") {
				toolArgs["max_rank"] = maxRank
			}
			if location != "" {
				toolArgs["location_preference"] = location
			}
			if len(skills) > 0 {
				toolArgs["academic_skills"] = skills
			}
			if len(extras) > 0 {
				toolArgs["extra_curriculars"] = extras
			}
			return runQuery(cmd, opts, toolx.ToolGetCollegeData, toolArgs)
		},
	}

	cmd.Flags().StringVar(&major, "major", "", "desired major (required)")
	cmd.Flags().IntVar(&minRank, "min-rank", 0, "minimum rank, inclusive")
	cmd.Flags().IntVar(&maxRank, "max-rank", 0, "maximum rank, inclusive")
	cmd.Flags().StringVar(&location, "location", "", "preferred location")
	cmd.Flags().StringSliceVar(&skills, "skill", nil, "academic skill, repeatable")
	cmd.Flags().StringSliceVar(&extras, "extra", nil, "extra-curricular activity, repeatable")
	_ = cmd.MarkFlagRequired("major")
	return cmd
}

func newScholarshipsCmd(opts *rootOptions) *cobra.Command {
	var (
		college string
		major   string
		profile string
		skills  []string
	)

	cmd := &cobra.Command{
		Use:   "scholarships",
		Short: "Search scholarships without the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs := map[string]any{}
			if college != "" {
				toolArgs["college_name"] = college
			}
			if major != "" {
				toolArgs["major"] = major
			}
			if profile != "" {
				toolArgs["academic_profile"] = profile
			}
			if len(skills) > 0 {
				toolArgs["skills"] = skills
			}
			return runQuery(cmd, opts, toolx.ToolSearchScholarships, toolArgs)
		},
	}

	cmd.Flags().StringVar(&college, "college", "", "college name, or Any")
	cmd.Flags().StringVar(&major, "major", "", "field of study, or Any")
	cmd.Flags().StringVar(&profile, "profile", "", "academic profile, e.g. leadership")
	cmd.Flags().StringSliceVar(&skills, "skill", nil, "skill, repeatable")
	return cmd
}

func runQuery(cmd *cobra.Command, opts *rootOptions, tool string, args map[string]any) error {
	notifier := contractx.NoopNotifier
	if opts.debug {
		errOut := cmd.ErrOrStderr()
		notifier = contractx.NotifierFunc(func(n contractx.ToolNotice) {
			fmt.Fprintln(errOut, n.String())
		})
	}

	dispatcher, err := toolx.NewDispatcher(catalogx.Default(), notifier)
	if err != nil {
		return err
	}

	result := dispatcher.Dispatch(cmd.Context(), tool, args)
	if result.Failed() {
		return errors.New(strings.TrimPrefix(result.Error, "Error: "))
	}
	return writeResult(cmd.OutOrStdout(), result)
}

// writeResult pretty-prints record lists and prints messages verbatim.
func writeResult(w io.Writer, result contractx.ToolResult) error {
	if records, ok := result.Records(); ok {
		var buf bytes.Buffer
		if err := json.Indent(&buf, records, "", "  "); err != nil {
			return fmt.Errorf("format %s output: %w", result.Tool, err)
		}
		_, err := fmt.Fprintln(w, buf.String())
		return err
	}
	_, err := fmt.Fprintln(w, result.Content())
	return err
}
