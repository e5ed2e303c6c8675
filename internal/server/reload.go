package server

import (
	"net/http"
	"strings"
	"sync"
)

// ReloadPath is the SSE endpoint the injected dev script listens on.
const ReloadPath = "/_skald/reload"

const reloadScriptSource = `(function () {
  var es = new EventSource("/_skald/reload");
  es.addEventListener("reload", function () { location.reload(); });
  window.__skald_reload = es;
})();`

// Reload fans change notifications out to connected dev clients over SSE.
type Reload struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func NewReload() *Reload {
	return &Reload{
		subs: map[chan struct{}]struct{}{},
	}
}

func (r *Reload) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	r.mu.Lock()
	r.subs[ch] = struct{}{}
	r.mu.Unlock()
	return ch
}

func (r *Reload) unsubscribe(ch chan struct{}) {
	r.mu.Lock()
	delete(r.subs, ch)
	r.mu.Unlock()
	close(ch)
}

func (r *Reload) Notify() {
	r.mu.Lock()
	for ch := range r.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	r.mu.Unlock()
}

func (r *Reload) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	_, _ = w.Write([]byte("event: ready\ndata: 1\n\n"))
	flusher.Flush()

	ch := r.subscribe()
	defer r.unsubscribe(ch)

	for {
		select {
		case <-req.Context().Done():
			return
		case <-ch:
			_, _ = w.Write([]byte("event: reload\ndata: 1\n\n"))
			flusher.Flush()
		}
	}
}

// InjectReloadScript appends the live-reload client before </body>.
func InjectReloadScript(html string) string {
	if strings.Contains(html, "__skald_reload") {
		return html
	}

	script := "<script>" + reloadScriptSource + "</script>"

	if strings.Contains(html, "</body>") {
		return strings.Replace(html, "</body>", script+"</body>", 1)
	}

	return html + script
}
