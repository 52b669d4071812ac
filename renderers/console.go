package renderers

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/nzai/nseq/formats"
	"github.com/nzai/nseq/quotes"
	"go.uber.org/zap"
)

const (
	// LoadingMessage shown while a quote is fetched
	LoadingMessage = "Loading stock data..."
	// PausedMessage shown once live updates stop
	PausedMessage = "Real-time updates paused. Search again to resume."

	separator = "----------------------------------------"
)

// Console render text cards to a writer
type Console struct {
	mutex sync.Mutex
	w     io.Writer
	now   func() time.Time
}

// NewConsole create console renderer
func NewConsole(w io.Writer) *Console {
	return &Console{w: w, now: time.Now}
}

// RenderQuote write a quote card
func (c *Console) RenderQuote(snapshot *quotes.Snapshot) {
	if snapshot == nil {
		return
	}

	c.write(Card(snapshot, c.now()))
}

// RenderError write an error message
func (c *Console) RenderError(message string) {
	c.write("! " + message + "\n")
}

// RenderLoading write the loading indicator
func (c *Console) RenderLoading() {
	c.write(LoadingMessage + "\n")
}

// RenderUpdatesPaused write the paused indicator
func (c *Console) RenderUpdatesPaused() {
	c.write("! " + PausedMessage + "\n")
}

// Write write p in one piece, so it never interleaves with a card
func (c *Console) Write(p []byte) (int, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.w.Write(p)
}

func (c *Console) write(text string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, err := io.WriteString(c.w, text)
	if err != nil {
		zap.L().Warn("write console failed", zap.Error(err))
	}
}

// Card format snapshot as a text card
func Card(snapshot *quotes.Snapshot, renderedAt time.Time) string {
	sb := new(strings.Builder)

	row := func(label, value string) {
		fmt.Fprintf(sb, "%-16s%s\n", label, value)
	}

	sb.WriteString(separator + "\n")
	fmt.Fprintf(sb, "%s  %s\n", snapshot.Symbol.Code(), snapshot.Exchange)
	if snapshot.Name != "" && snapshot.Name != snapshot.Symbol.Code() {
		sb.WriteString(snapshot.Name + "\n")
	}
	sb.WriteString(formats.Price(snapshot.Price) + "\n")
	sb.WriteString(formats.Change(snapshot.Change, snapshot.ChangePercent) + "\n")

	row("Day's Range", formats.Range(snapshot.DayLow, snapshot.DayHigh))
	row("Previous Close", formats.Price(snapshot.PreviousClose))
	if snapshot.Open != nil {
		row("Open", formats.Optional(snapshot.Open))
	}
	row("Volume", formats.Volume(snapshot.Volume))
	if snapshot.MarketCap != nil {
		row("Market Cap", formats.MarketCap(snapshot.MarketCap))
	}
	if snapshot.FiftyTwoWeekLow != nil || snapshot.FiftyTwoWeekHigh != nil {
		row("52 Week Range", formats.Optional(snapshot.FiftyTwoWeekLow)+" - "+formats.Optional(snapshot.FiftyTwoWeekHigh))
	}
	row("Market Time", formats.Clock(snapshot.UpdatedAt))
	row("Last Updated", formats.Clock(renderedAt))
	sb.WriteString(separator + "\n")

	return sb.String()
}
