package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nzai/nseq/quotes"
	"github.com/urfave/cli/v3"
)

func init() {
	RegisterCommand(&Search{})
}

// Search list nse listings matching a query
type Search struct{}

func (s *Search) Command() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "suggest nse symbols by name or ticker",
		ArgsUsage: "QUERY",
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return errors.New("query is required")
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

			printSuggestions(os.Stdout, a.viewer.Suggest(ctx, query))
			return nil
		},
	}
}

// printSuggestions write the whole list with a single Write
func printSuggestions(w io.Writer, suggestions quotes.Suggestions) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "No matching symbols")
		return
	}

	text := new(strings.Builder)
	for _, suggestion := range suggestions {
		fmt.Fprintf(text, "%-16s %s\n", suggestion.Symbol, suggestion.Name)
	}

	io.WriteString(w, text.String())
}
