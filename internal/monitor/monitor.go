// Package monitor serves a read-only HTML page listing every entry
// currently held by a Store. It never mutates the table.
package monitor

import (
	"html/template"
	"net/http"

	"github.com/DaHogie/memcachedImplementation/internal/stats"
	"github.com/DaHogie/memcachedImplementation/internal/storage"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head><title>memcachedd monitor</title></head>
<body>
<h1>Stored keys</h1>
<table border="1" cellpadding="4">
<tr><th>key</th><th>flags</th><th>bytes</th><th>data</th></tr>
{{range .Entries}}<tr><td>{{.Key}}</td><td>{{.Flags}}</td><td>{{.Bytes}}</td><td>{{.Data}}</td></tr>
{{end}}
</table>
<p>{{len .Entries}} keys</p>
{{with .Stats}}
<h2>Operation counts</h2>
<ul>
<li>connections: {{.Connections}}</li>
<li>set: {{.SetOps}}</li>
<li>get: {{.GetOps}}</li>
<li>delete: {{.DeleteOps}}</li>
</ul>
{{end}}
</body>
</html>
`

var tmpl = template.Must(template.New("monitor").Parse(pageTemplate))

// row is the template's view of one entry; Data is rendered as a
// string since html/template escapes it regardless of byte content.
type row struct {
	Key   string
	Flags uint16
	Bytes int
	Data  string
}

type page struct {
	Entries []row
	Stats   *stats.Snapshot
}

// Handler serves the monitoring page backed by store. Counters is
// optional; when nil the page omits the operation-count section.
type Handler struct {
	store    storage.Store
	counters *stats.Counters
}

// NewHandler builds a Handler reading from store, with no operation
// counters attached.
func NewHandler(store storage.Store) *Handler {
	return &Handler{store: store}
}

// NewHandlerWithStats builds a Handler that also renders the running
// totals held in counters.
func NewHandlerWithStats(store storage.Store, counters *stats.Counters) *Handler {
	return &Handler{store: store, counters: counters}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListAll()
	if err != nil {
		http.Error(w, "failed to list keys", http.StatusInternalServerError)
		return
	}

	rows := make([]row, len(entries))
	for i, e := range entries {
		rows[i] = row{Key: e.Key, Flags: e.Flags, Bytes: e.Bytes, Data: string(e.DataBlock)}
	}

	p := page{Entries: rows}
	if h.counters != nil {
		snap := h.counters.Snap()
		p.Stats = &snap
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, p); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
