package events

import "github.com/workshell/workshell/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) ContainerCreated() {
	logging.Trace("app.container-created", nil)
}
