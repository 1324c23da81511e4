package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
	configx "github.com/tanpawarit/Chative-College-Advisor/pkg/config"
	logx "github.com/tanpawarit/Chative-College-Advisor/pkg/logger"
)

type rootOptions struct {
	envFile     string
	secretsFile string
	debug       bool

	logConf logx.Config
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "advisor",
		Short:         "AI college and scholarship advisor",
		Long:          "Chat with an AI advisor that recommends colleges and scholarships from a built-in catalog.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initialize()
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.PersistentFlags().StringVar(&opts.envFile, "env", "", "path to a dotenv file (default .env when present)")
	cmd.PersistentFlags().StringVar(&opts.secretsFile, "secrets", "", "path to a secrets TOML file (default secrets.toml when present)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newChatCmd(opts),
		newAskCmd(opts),
		newCollegesCmd(opts),
		newScholarshipsCmd(opts),
		newToolsCmd(),
		newDoctorCmd(opts),
	)
	return cmd
}

// initialize applies the file flags and reconfigures logging from them.
func (o *rootOptions) initialize() error {
	configx.SetEnvFile(o.envFile)
	configx.SetSecretsFile(o.secretsFile)

	conf, err := configx.New[logx.Config]("LOG")
	if err != nil {
		return err
	}
	if o.debug {
		conf.Debug = true
	}
	o.logConf = *conf
	return logx.Init(o.logConf)
}

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

func userMessage(err error) string {
	if errors.Is(err, contractx.ErrMissingCredential) {
		log.Debug().Err(err).Msg("credential missing")
		return "Error: OPENROUTER_API_KEY is not set. Add it to secrets.toml, a .env file or the environment and try again."
	}
	return fmt.Sprintf("Error: %v", err)
}
