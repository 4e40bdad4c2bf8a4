package events

import "github.com/atomicstack/evsched/internal/logging"

type SearchTracer struct{}

type SearchReason string

const (
	SearchReasonShort   SearchReason = "short"
	SearchReasonEscape  SearchReason = "escape"
	SearchReasonOutside SearchReason = "outside"
	SearchReasonEmpty   SearchReason = "empty"
	SearchReasonFailed  SearchReason = "failed"
)

var Search = SearchTracer{}

func (SearchTracer) Input(text string, gen uint64) {
	logging.Trace("search.input", map[string]interface{}{"text": text, "gen": gen})
}

func (SearchTracer) Fire(query string, seq uint64) {
	logging.Trace("search.fire", map[string]interface{}{"query": query, "seq": seq})
}

func (SearchTracer) Stale(seq, current uint64) {
	logging.Trace("search.stale", map[string]interface{}{"seq": seq, "current": current})
}

func (SearchTracer) Render(query string, seq uint64, count int) {
	logging.Trace("search.render", map[string]interface{}{"query": query, "seq": seq, "count": count})
}

func (SearchTracer) Clear(reason SearchReason) {
	logging.Trace("search.clear", map[string]interface{}{"reason": string(reason)})
}

func (SearchTracer) Focus() {
	logging.Trace("search.focus", nil)
}
