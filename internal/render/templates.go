package render

const fragmentTemplate = `{{define "cell"}}<div class="lg-cell">
<input type="checkbox" class="lg-zoom" id="{{.ZoomID}}">
<label for="{{.ZoomID}}"><img src="{{.Src}}" alt="{{.Alt}}" title="{{.Alt}}"></label>
<div class="lg-caption">{{.Caption}}</div>
<div class="lg-sub">{{.Sub}}</div>
</div>{{end}}
{{define "grid"}}<div class="lg-grid">
{{range .}}{{template "cell" .}}
{{end}}</div>{{end}}
{{define "tabs"}}<div class="lg-root" id="{{.RootID}}">
<style>{{.CSS}}</style>
{{range .Tabs}}<input type="radio" class="lg-tab-input" name="{{$.RootID}}-tabs" id="{{.InputID}}"{{if .Checked}} checked{{end}}>
<label class="lg-tab-label" for="{{.InputID}}">{{.Title}}</label>
{{end}}{{range .Tabs}}<div class="lg-panel" id="{{.PanelID}}">
{{template "grid" .Cells}}
</div>
{{end}}</div>{{end}}
{{define "flat"}}<div class="lg-root" id="{{.RootID}}">
<style>{{.CSS}}</style>
{{template "grid" .Cells}}
</div>{{end}}`

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 1rem; }
h1 { font-size: 1.25rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{.Body}}
</body>
</html>
`

// baseCSS is scoped to one output by prefixing every selector with its root id.
const baseCSS = `#%[1]s .lg-grid { display: flex; flex-wrap: wrap; gap: 6px; align-items: flex-start; }
#%[1]s .lg-cell { width: %[2]dpx; text-align: center; font-size: 12px; }
#%[1]s .lg-cell img { width: %[2]dpx; transition: transform .2s ease-in-out; cursor: zoom-in; }
#%[1]s .lg-zoom { display: none; }
#%[1]s .lg-zoom:checked + label img { transform: scale(%[3]s); position: relative; z-index: 10; cursor: zoom-out; box-shadow: 0 0 8px rgba(0,0,0,.4); }
#%[1]s .lg-caption { font-weight: 600; overflow-wrap: anywhere; }
#%[1]s .lg-sub { color: #6c757d; }
#%[1]s .lg-tab-input { display: none; }
#%[1]s .lg-tab-label { display: inline-block; padding: 4px 10px; margin: 0 2px 6px 0; border: 1px solid #dee2e6; border-radius: 4px 4px 0 0; cursor: pointer; }
#%[1]s .lg-tab-input:checked + .lg-tab-label { background: #0d6efd; color: #fff; }
#%[1]s .lg-panel { display: none; }
`
