package events

import "github.com/atomicstack/evsched/internal/logging"

type FormTracer struct{}

var Form = FormTracer{}

func (FormTracer) Attach(formID string, reused bool) {
	logging.Trace("form.attach", map[string]interface{}{"form": formID, "reused": reused})
}

func (FormTracer) Invalid(formID, field string) {
	logging.Trace("form.invalid", map[string]interface{}{"form": formID, "field": field})
}

func (FormTracer) Suppressed(formID string) {
	logging.Trace("form.suppressed", map[string]interface{}{"form": formID})
}

func (FormTracer) Pending(formID string) {
	logging.Trace("form.pending", map[string]interface{}{"form": formID})
}

func (FormTracer) Settled(formID string, err error) {
	payload := map[string]interface{}{"form": formID}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("form.settled", payload)
}
