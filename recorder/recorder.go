package recorder

import (
	"github.com/nzai/nseq/quotes"
	"github.com/nzai/nseq/renderers"
	"github.com/nzai/nseq/stores"
	"go.uber.org/zap"
)

// Recorder save every rendered snapshot to the store before passing it on
type Recorder struct {
	renderers.Renderer
	store stores.Store
}

// NewRecorder create recorder over renderer
func NewRecorder(renderer renderers.Renderer, store stores.Store) *Recorder {
	return &Recorder{
		Renderer: renderer,
		store:    store,
	}
}

// RenderQuote record snapshot and render it
func (s Recorder) RenderQuote(snapshot *quotes.Snapshot) {
	if snapshot != nil {
		err := s.store.SaveSnapshot(snapshot)
		if err != nil {
			// rendering goes on without the record
			zap.L().Warn("record snapshot failed",
				zap.Error(err),
				zap.Stringer("symbol", snapshot.Symbol))
		}
	}

	s.Renderer.RenderQuote(snapshot)
}
