package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/nzai/nseq/symbols"
	"github.com/nzai/nseq/viewers"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func init() {
	RegisterCommand(&Quote{})
}

// Quote print one snapshot per symbol and exit
type Quote struct {
	json bool
}

func (q *Quote) Command() *cli.Command {
	return &cli.Command{
		Name:      "quote",
		Aliases:   []string{"q"},
		Usage:     "show current quote of nse symbols",
		ArgsUsage: "SYMBOL...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print snapshots as json lines",
				Destination: &q.json,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() == 0 {
				return errors.New("at least one symbol is required")
			}

			cfg, err := loadConfig(ConfigPath)
			if err != nil {
				return err
			}

			a, err := newApp(cfg, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			return q.run(ctx, a, os.Stdout, c.Args().Slice())
		},
	}
}

func (q *Quote) run(ctx context.Context, a *app, w io.Writer, args []string) error {
	var failed int
	for _, raw := range args {
		symbol, err := symbols.Normalize(raw)
		if err != nil {
			zap.L().Warn("skip empty symbol", zap.String("input", raw))
			continue
		}

		snapshot, err := a.source.Quote(ctx, symbol)
		if err != nil {
			failed++
			a.console.RenderError(viewers.Message(strings.TrimSpace(raw), err, time.Now()))
			continue
		}

		err = a.store.SaveSnapshot(snapshot)
		if err != nil {
			zap.L().Warn("record snapshot failed", zap.Error(err), zap.Stringer("symbol", symbol))
		}

		if !q.json {
			a.console.RenderQuote(snapshot)
			continue
		}

		buffer, err := sonic.Marshal(snapshot)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(buffer))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d symbols failed", failed, len(args))
	}

	return nil
}
