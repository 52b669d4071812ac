package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/nzai/nseq/formats"
	"github.com/nzai/nseq/quotes"
	"github.com/nzai/nseq/symbols"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func init() {
	RegisterCommand(&Watch{})
}

const watchHelp = `type a symbol to view it, the card refreshes until the next search
  :suggest QUERY   list matching symbols
  :links           list quick access symbols, :links N views the Nth
  :recent [SYMBOL] list symbols viewed so far, or the last card of SYMBOL
  :focus           pause live updates
  :hide / :show    pretend the viewer left or regained the foreground
  :proxies         list relay endpoints in try order
  :quit            exit`

// Watch interactive viewer reading searches from stdin
type Watch struct{}

func (w Watch) Command() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Aliases:   []string{"w"},
		Usage:     "view a symbol and keep it refreshed",
		ArgsUsage: "[SYMBOL]",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(ConfigPath)
			if err != nil {
				return err
			}

			a, err := newApp(cfg, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			fmt.Fprintln(a.console, watchHelp)

			if c.Args().Present() {
				// an initial symbol is searched straight away
				_ = a.viewer.Search(ctx, c.Args().First())
			}

			// everything goes through the console so lines never interleave with a card
			return w.loop(ctx, a, os.Stdin, a.console)
		},
	}
}

// loop read lines until input ends, :quit or ctx is done
func (w Watch) loop(ctx context.Context, a *app, r io.Reader, out io.Writer) error {
	lines := make(chan string)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			zap.L().Warn("read input failed", zap.Error(err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			if quit := w.handle(a, out, line); quit {
				return nil
			}
		}
	}
}

// handle run one input line, return true to quit
func (w Watch) handle(a *app, out io.Writer, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if !strings.HasPrefix(line, ":") {
		a.viewer.SearchLater(line)
		return false
	}

	command, argument, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	switch command {
	case "quit", "q":
		return true
	case "suggest", "s":
		a.viewer.SuggestLater(argument, func(suggestions quotes.Suggestions) {
			printSuggestions(out, suggestions)
		})
	case "recent", "r":
		w.recent(a, out, argument)
	case "links", "l":
		w.links(a, out, argument)
	case "focus", "f":
		a.viewer.Focus()
	case "hide":
		a.flag.Hide()
	case "show":
		a.flag.Show()
	case "proxies":
		printEndpoints(out, a.fetcher.Endpoints())
	default:
		fmt.Fprintln(out, watchHelp)
	}

	return false
}

// recent list every viewed symbol, or show the last card of one
func (w Watch) recent(a *app, out io.Writer, argument string) {
	if strings.TrimSpace(argument) != "" {
		symbol, err := symbols.Normalize(argument)
		if err != nil {
			fmt.Fprintln(out, "! "+err.Error())
			return
		}

		snapshot, err := a.viewer.Last(symbol)
		if err != nil {
			fmt.Fprintf(out, "! %s has not been viewed yet\n", symbol)
			return
		}

		a.console.RenderQuote(snapshot)
		return
	}

	snapshots, err := a.viewer.Recent()
	if err != nil {
		fmt.Fprintln(out, "! "+err.Error())
		return
	}

	text := new(strings.Builder)
	for _, snapshot := range snapshots {
		fmt.Fprintf(text, "%-16s %12s %s\n", snapshot.Symbol, formats.Price(snapshot.Price), formats.Change(snapshot.Change, snapshot.ChangePercent))
	}
	io.WriteString(out, text.String())
}

// links list the quick access symbols, a number picks one to view
func (w Watch) links(a *app, out io.Writer, argument string) {
	argument = strings.TrimSpace(argument)
	if argument == "" {
		text := new(strings.Builder)
		for index, listing := range symbols.Base {
			fmt.Fprintf(text, "%d. %-16s %s\n", index+1, listing.Symbol, listing.Name)
		}
		io.WriteString(out, text.String())
		return
	}

	index, err := strconv.Atoi(argument)
	if err != nil || index < 1 || index > len(symbols.Base) {
		fmt.Fprintf(out, "! pick a link between 1 and %d\n", len(symbols.Base))
		return
	}

	a.viewer.SearchLater(symbols.Base[index-1].Symbol.String())
}
