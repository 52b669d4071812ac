package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nzai/nseq/proxies"
	"github.com/urfave/cli/v3"
)

func init() {
	RegisterCommand(&ListProxies{})
}

// ListProxies print relay endpoints in try order
type ListProxies struct{}

func (l ListProxies) Command() *cli.Command {
	return &cli.Command{
		Name:  "proxies",
		Usage: "list relay endpoints in the order they are tried",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(ConfigPath)
			if err != nil {
				return err
			}

			endpoints, err := cfg.Endpoints()
			if err != nil {
				return err
			}

			printEndpoints(os.Stdout, endpoints)
			return nil
		},
	}
}

func printEndpoints(w io.Writer, endpoints []proxies.Endpoint) {
	text := new(strings.Builder)
	for index, endpoint := range endpoints {
		base := endpoint.Base
		if base == "" {
			base = "(direct)"
		}

		fmt.Fprintf(text, "%d. %-16s %-10s %s\n", index+1, endpoint.Name, endpoint.Unwrap, base)
	}

	io.WriteString(w, text.String())
}
