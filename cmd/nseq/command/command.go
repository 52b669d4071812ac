package command

import (
	"github.com/urfave/cli/v3"
)

// Commander provide a sub command
type Commander interface {
	Command() *cli.Command
}

var Commands = []Commander{}

func RegisterCommand(cmd Commander) {
	Commands = append(Commands, cmd)
}

// ConfigPath set by the global --config flag, defaults apply when empty
var ConfigPath string

// Flags global flags
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "specify toml `file`, eg: nseq.toml",
			Destination: &ConfigPath,
		},
	}
}
