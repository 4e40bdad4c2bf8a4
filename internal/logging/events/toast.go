package events

import "github.com/atomicstack/evsched/internal/logging"

type ToastTracer struct{}

var Toast = ToastTracer{}

func (ToastTracer) Enqueue(id uint64, kind, message string) {
	logging.Trace("toast.enqueue", map[string]interface{}{"id": id, "kind": kind, "message": message})
}

func (ToastTracer) Fade(id uint64) {
	logging.Trace("toast.fade", map[string]interface{}{"id": id})
}

func (ToastTracer) Remove(id uint64, explicit bool) {
	logging.Trace("toast.remove", map[string]interface{}{"id": id, "explicit": explicit})
}
