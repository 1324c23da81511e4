package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	toolx "github.com/tanpawarit/Chative-College-Advisor/agent/tool"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool declarations offered to the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schemas, err := toolx.DeclarationSchemas()
			if err != nil {
				return err
			}
			raw, err := json.MarshalIndent(schemas, "", "  ")
			if err != nil {
				return fmt.Errorf("encode tool declarations: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return err
		},
	}
}
