package main

import (
	"encoding/json"
	"net/http"
	"time"
)

type reportView struct {
	Received  string
	Cluster   string
	Count     int
	Ingresses []ingressView
	RawJSON   string
}

type ingressView struct {
	Namespace   string
	Name        string
	Host        string
	Certificate string
	Expires     string
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	stored := s.store.List()
	views := make([]reportView, 0, len(stored))
	for _, item := range stored {
		view := reportView{
			Received: item.Timestamp.Format(time.RFC3339),
			Cluster:  item.Report.Cluster,
			Count:    len(item.Report.Ingresses),
		}
		for _, entry := range item.Report.Ingresses {
			iv := ingressView{
				Namespace: entry.Namespace,
				Name:      entry.Name,
				Host:      entry.Host,
			}
			if entry.Certificate != nil {
				iv.Certificate = entry.Certificate.Name
				iv.Expires = entry.Certificate.Expires.Format(time.RFC3339)
			}
			view.Ingresses = append(view.Ingresses, iv)
		}
		if raw, err := json.MarshalIndent(item.Report, "", "  "); err == nil {
			view.RawJSON = string(raw)
		}
		views = append(views, view)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = s.tmpl.Execute(w, map[string]any{
		"Reports": views,
		"Count":   len(views),
		"Now":     time.Now().UTC().Format(time.RFC3339),
	})
}

const reportsHTML = `<!DOCTYPE html>
<html>
<head>
<title>Ingress Observer Reports</title>
<style>
body { font-family: monospace; margin: 20px; background-color: #f5f5f5; }
h1 { color: #333; }
.report { background-color: white; border: 1px solid #ddd; border-radius: 4px; padding: 15px; margin: 10px 0; }
.timestamp { color: #666; font-size: 0.9em; margin-bottom: 10px; }
.cluster { font-weight: bold; color: #2196F3; margin-bottom: 10px; }
.ingress { margin-left: 20px; margin-top: 5px; padding-left: 10px; border-left: 2px solid #ddd; }
.host { color: #4CAF50; }
.certificate { color: #FF9800; margin-left: 10px; }
.no-reports { color: #999; font-style: italic; }
pre { background-color: #f9f9f9; padding: 10px; border-radius: 4px; overflow-x: auto; }
</style>
</head>
<body>
<h1>Ingress Observer Reports</h1>
<p>Total reports received: {{.Count}}</p>
{{if .Reports}}
{{range .Reports}}
<div class="report">
  <div class="timestamp">Received: {{.Received}}</div>
  <div class="cluster">Cluster: {{.Cluster}}</div>
  <div>Ingresses: {{.Count}}</div>
  {{if .Ingresses}}
  <div style="margin-top: 10px;">
    {{range .Ingresses}}
    <div class="ingress">
      <span class="host">{{.Host}}</span>
      <span style="color: #666;">({{.Namespace}}/{{.Name}})</span>
      {{if .Certificate}}
      <div class="certificate">
        Certificate: {{.Certificate}}
        {{if .Expires}}<br>Expires: {{.Expires}}{{end}}
      </div>
      {{end}}
    </div>
    {{end}}
  </div>
  {{end}}
  <details style="margin-top: 10px;">
    <summary style="cursor: pointer; color: #666;">View Raw JSON</summary>
    <pre>{{.RawJSON}}</pre>
  </details>
</div>
{{end}}
{{else}}
<div class="no-reports">No reports received yet.</div>
{{end}}
<p style="margin-top: 20px; color: #666; font-size: 0.9em;">Last updated: {{.Now}}</p>
</body>
</html>
`
