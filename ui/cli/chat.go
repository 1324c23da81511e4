package cli

import (
	"github.com/spf13/cobra"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
	logx "github.com/tanpawarit/Chative-College-Advisor/pkg/logger"
	"github.com/tanpawarit/Chative-College-Advisor/ui/tui"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive advisor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			notices := make(chan contractx.ToolNotice, 32)
			adv, err := buildAdvisor(ctx, channelNotifier(notices))
			if err != nil {
				return err
			}

			// Log lines would corrupt the screen.
			if opts.logConf.File == "" {
				logx.Discard()
			}

			conv, err := adv.NewConversation()
			if err != nil {
				return err
			}
			reset := func() (tui.Chat, error) {
				next, err := adv.Reset()
				if err != nil {
					return nil, err
				}
				return next, nil
			}
			return tui.Run(ctx, conv, reset, notices)
		},
	}
}
