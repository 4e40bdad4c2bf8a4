package events

import "github.com/atomicstack/evsched/internal/logging"

type APITracer struct{}

var API = APITracer{}

func (APITracer) Request(id, method, url string) {
	logging.Trace("api.request", map[string]interface{}{"id": id, "method": method, "url": url})
}

func (APITracer) Response(id string, status int) {
	logging.Trace("api.response", map[string]interface{}{"id": id, "status": status})
}

func (APITracer) Failure(id string, err error, silent bool) {
	if err == nil {
		return
	}
	logging.Trace("api.failure", map[string]interface{}{"id": id, "error": err.Error(), "silent": silent})
}

func (APITracer) CacheHit(key string) {
	logging.Trace("api.cache.hit", map[string]interface{}{"key": key})
}
