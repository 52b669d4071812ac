package renderers

import (
	"github.com/nzai/nseq/quotes"
)

// Renderer display quote cards and status messages
//
//go:generate mockgen -package=mocks -destination=../internal/mocks/mock_renderer.go -source=renderer.go Renderer
type Renderer interface {
	// RenderQuote display a snapshot card, replacing the current one
	RenderQuote(*quotes.Snapshot)
	// RenderError display an error message
	RenderError(string)
	// RenderLoading display the loading indicator
	RenderLoading()
	// RenderUpdatesPaused display the persistent paused indicator
	RenderUpdatesPaused()
}

// Multi fan out to several renderers in order
type Multi []Renderer

// NewMulti create multi renderer, skipping nil renderers
func NewMulti(renderers ...Renderer) Multi {
	multi := make(Multi, 0, len(renderers))
	for _, renderer := range renderers {
		if renderer != nil {
			multi = append(multi, renderer)
		}
	}

	return multi
}

// RenderQuote render quote on every renderer
func (m Multi) RenderQuote(snapshot *quotes.Snapshot) {
	for _, renderer := range m {
		renderer.RenderQuote(snapshot)
	}
}

// RenderError render error on every renderer
func (m Multi) RenderError(message string) {
	for _, renderer := range m {
		renderer.RenderError(message)
	}
}

// RenderLoading render loading on every renderer
func (m Multi) RenderLoading() {
	for _, renderer := range m {
		renderer.RenderLoading()
	}
}

// RenderUpdatesPaused render paused on every renderer
func (m Multi) RenderUpdatesPaused() {
	for _, renderer := range m {
		renderer.RenderUpdatesPaused()
	}
}
