package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	catalogx "github.com/tanpawarit/Chative-College-Advisor/agent/catalog"
	promptx "github.com/tanpawarit/Chative-College-Advisor/agent/prompt"
	openrouterx "github.com/tanpawarit/Chative-College-Advisor/pkg/openrouter"
)

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the catalog, the prompt and the model credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			store := catalogx.Default()
			fmt.Fprintf(out, "catalog: %d colleges, %d scholarships\n", store.LenColleges(), store.LenScholarships())

			if err := promptx.LoadPromptSet().Validate(); err != nil {
				return err
			}
			fmt.Fprintln(out, "prompt: ok")

			cfg, err := loadLLMConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res, err := openrouterx.Probe(ctx, cfg.OpenRouter())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "model: %s reachable in %s\n", res.Model, res.Latency.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "probe timeout")
	return cmd
}
