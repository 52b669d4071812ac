package command

import (
	"context"
	"fmt"

	"github.com/nzai/nseq/constants"
	"github.com/urfave/cli/v3"
)

func init() {
	RegisterCommand(&ShowVersion{})
}

type ShowVersion struct{}

func (c ShowVersion) Command() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "show version",
		Action: func(ctx context.Context, c *cli.Command) error {
			fmt.Println(constants.Version)
			return nil
		},
	}
}
