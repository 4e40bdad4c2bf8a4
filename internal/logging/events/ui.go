package events

import "github.com/atomicstack/evsched/internal/logging"

type ActionTracer struct{}

type CommandTracer struct{}

type KeyTracer struct{}

var (
	Action  = ActionTracer{}
	Command = CommandTracer{}
	Key     = KeyTracer{}
)

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (KeyTracer) Shortcut(name string) {
	logging.Trace("key.shortcut", map[string]interface{}{"name": name})
}
