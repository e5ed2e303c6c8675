package core

import (
	"html/template"
)

// ErrorData drives the render-failure page. The message is shown only in dev;
// prod visitors get a generic line.
type ErrorData struct {
	Message string
	IsDev   bool
}

var ErrorTemplate = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Render error</title>
    <style>
        body { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; background: #14161a; color: #d8dee9; margin: 0; }
        main { max-width: 720px; margin: 12vh auto 0; padding: 0 24px; }
        h1 { font-size: 1.3rem; border-bottom: 2px solid #bf616a; padding-bottom: 8px; }
        pre { background: #1d2026; border-left: 3px solid #bf616a; padding: 16px; overflow-x: auto; white-space: pre-wrap; }
        p { color: #8b95a7; }
    </style>
</head>
<body>
    <main>
        <h1>Page failed to render</h1>
        {{if .IsDev}}
        <pre>{{.Message}}</pre>
        <p>Fix the template or loader and save; the dev server reloads the page.</p>
        {{else}}
        <p>Something went wrong while building this page.</p>
        {{end}}
    </main>
</body>
</html>`))
