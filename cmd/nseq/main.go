package main

import (
	"context"
	"os"

	"github.com/nzai/nseq/cmd/nseq/command"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	lc := zap.NewDevelopmentConfig()
	lc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	logger, _ := lc.Build()
	defer logger.Sync()

	undo := zap.ReplaceGlobals(logger)
	defer undo()

	app := &cli.Command{
		Name:  "nseq",
		Usage: "look up nse stocks and keep their quotes refreshed",
		Flags: command.Flags(),
	}

	for _, command := range command.Commands {
		app.Commands = append(app.Commands, command.Command())
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		zap.L().Fatal(err.Error())
	}
}
