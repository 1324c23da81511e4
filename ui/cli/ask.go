package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	advisorx "github.com/tanpawarit/Chative-College-Advisor/agent/agents/advisor"
	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Send one message to the advisor and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			errOut := cmd.ErrOrStderr()
			notifier := contractx.NotifierFunc(func(n contractx.ToolNotice) {
				fmt.Fprintln(errOut, n.String())
			})

			adv, err := buildAdvisor(cmd.Context(), notifier)
			if err != nil {
				return err
			}
			conv, err := adv.NewConversation()
			if err != nil {
				return err
			}

			reply, err := conv.Send(cmd.Context(), strings.Join(args, " "))
			if errors.Is(err, advisorx.ErrInvalidMessage) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply.Text())
			return err
		},
	}
}
