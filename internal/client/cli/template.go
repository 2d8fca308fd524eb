package cli

const itemTemplate = `
=== Item Details ===

Title:    {{.Title}}
ID:       {{.ID}}
Priority: {{.Priority}}
Status:   {{.SyncStatus}}
Created:  {{.CreatedAt}}
Updated:  {{.UpdatedAt}}
{{- if .DeletedAt }}
Deleted:  {{.DeletedAt}}
{{- end}}
{{- if .Content }}

Content:
---
{{.Content}}
---
{{- end}}
`

const itemsListTemplate = `
=== Saved Items ===

{{- if eq (len .) 0 }}
No items found.

Use 'gophsync items add --title <title>' to add your first item.

{{ else }}
Found {{len .}} item(s):

{{- range . }}
- {{ .Title }}{{ if .DeletedAt }} (deleted){{ end }}
   ID:       {{ .ID }}
   Priority: {{ .Priority }}
   Status:   {{ .SyncStatus }}
   {{- if .Content }}
   Preview:  {{ preview .Content }}
   {{- end }}

{{- end }}
Use 'gophsync items get <id>' to view full content.
{{- end }}
`

const syncResultTemplate = `
=== Synchronization ===

{{- if .Success }}
✓ Synchronization completed successfully!
{{- else }}
⚠️  Synchronization completed with errors.
{{- end }}

Pushed to backend:   {{ .PushedCount }} change(s)
Pulled from backend: {{ .PulledCount }} change(s)
{{- if gt .ConflictCount 0 }}
Conflicts:           {{ .ConflictCount }}
{{- end }}
{{- range .Errors }}
  ! {{ .Entity }}/{{ .ID }}: {{ .Message }}
{{- end }}
`

const conflictsListTemplate = `
=== Conflicts ===

{{- if eq (len .) 0 }}
No conflicts.
{{ else }}
{{len .}} item(s) wait for resolution:

{{- range . }}
- {{ .Title }}
   ID:      {{ .ID }}
   Updated: {{ .UpdatedAt }}

{{- end }}
Use 'gophsync conflicts keep-local <id>' to push the local version on the next sync.
{{- end }}
`

const statusTemplate = `
=== Sync Status ===

Backend:         {{ .Backend }}
{{- if .LastSync }}
Last sync:       {{ .LastSync }}
{{- else }}
Last sync:       never
{{- end }}
Items:           {{ .Items }}
Conflicts:       {{ .Conflicts }}
Schema version:  {{ .Schema }}
{{- if gt .Pending 0 }}

⚠️  Pending sync: {{ .Pending }} record(s) waiting to be synchronized
Run 'gophsync sync' to synchronize.
{{- else }}

✓ All data synchronized
{{- end }}
`
