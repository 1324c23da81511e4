// Package autoload configures the global logger from LOG_* environment
// variables when imported.
package autoload

import (
	"github.com/rs/zerolog/log"

	configx "github.com/tanpawarit/Chative-College-Advisor/pkg/config"
	logx "github.com/tanpawarit/Chative-College-Advisor/pkg/logger"
)

func init() {
	conf, err := configx.New[logx.Config]("LOG")
	if err != nil {
		_ = logx.Init()
		log.Warn().Err(err).Msg("logger config not loaded, using defaults")
		return
	}
	if err := logx.Init(*conf); err != nil {
		log.Warn().Err(err).Msg("logger file not available, logging to stderr")
	}
}
