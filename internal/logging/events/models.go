package events

import "github.com/atomicstack/llamabar/internal/logging"

type ModelsTracer struct{}

type ServerTracer struct{}

var (
	Models = ModelsTracer{}
	Server = ServerTracer{}
)

func (ModelsTracer) Scan(dir string, installed int) {
	logging.Trace("models.scan", map[string]interface{}{"dir": dir, "installed": installed})
}

func (ModelsTracer) DownloadStart(id, url string) {
	logging.Trace("models.download.start", map[string]interface{}{"id": id, "url": url})
}

func (ModelsTracer) DownloadDone(id string, err error) {
	payload := map[string]interface{}{"id": id}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("models.download.done", payload)
}

func (ModelsTracer) DownloadCancel(id string) {
	logging.Trace("models.download.cancel", map[string]interface{}{"id": id})
}

func (ModelsTracer) Delete(id string) {
	logging.Trace("models.delete", map[string]interface{}{"id": id})
}

func (ModelsTracer) WatchEvent(name, op string) {
	logging.Trace("models.watch", map[string]interface{}{"name": name, "op": op})
}

func (ServerTracer) Start(model string, port int) {
	logging.Trace("server.start", map[string]interface{}{"model": model, "port": port})
}

func (ServerTracer) Stop(model string) {
	logging.Trace("server.stop", map[string]interface{}{"model": model})
}

func (ServerTracer) Kill(model string) {
	logging.Trace("server.kill", map[string]interface{}{"model": model})
}

func (ServerTracer) Exit(model string, err error) {
	payload := map[string]interface{}{"model": model}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("server.exit", payload)
}

func (ServerTracer) Memory(bytes uint64) {
	logging.Trace("server.memory", map[string]interface{}{"bytes": bytes})
}
