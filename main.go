package main

import (
	_ "github.com/tanpawarit/Chative-College-Advisor/pkg/logger/autoload"
	"github.com/tanpawarit/Chative-College-Advisor/ui/cli"
)

func main() {
	cli.Execute()
}
