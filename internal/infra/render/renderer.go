// Package render turns issue and milestone snapshots into the wiki
// pages and the documentation page. Rendering is pure: no I/O, and
// identical inputs produce byte-identical output.
package render

import (
	"strings"
	"text/template"
	"time"

	"github.com/um-tesoreria/wikisync/internal/domain"
)

// Wiki page file names. GitHub wikis route [[links]] by file name, so
// these are part of the published navigation.
const (
	PageHome       = "Home.md"
	PageMilestones = "Milestones.md"
	PageActive     = "Issues-Activos.md"
	PageClosed     = "Issues-Cerrados.md"
)

// Placeholder strings for absent fields. Rendered documents stay
// visually well-formed even when the tracker omits a value.
const (
	placeholderBody     = "Sin descripción"
	placeholderTitle    = "Sin título"
	placeholderClosedAt = "Desconocido"
)

var (
	homeTemplate = template.Must(template.New("home").Parse(`# UM Tesorería MercadoPago Service Wiki

Bienvenido a la Wiki del servicio de integración con MercadoPago de UM Tesorería.

## Navegación Rápida

- [[Milestones]]
- [[Issues-Activos]]
- [[Issues-Cerrados]]
`))

	milestonesTemplate = template.Must(template.New("milestones").Parse(`# Milestones del Servicio MercadoPago

{{range .}}## {{.Title}}
**Estado:** {{.State}}

**Descripción:** {{.Description}}

{{if .DueOn}}**Fecha límite:** {{.DueOn}}

{{end}}---

{{end}}`))

	issuesTemplate = template.Must(template.New("issues").Parse(`# {{.Heading}}

{{range .Issues}}## #{{.Number}}: {{.Title}}
**Creado:** {{.Created}}
{{if .Closed}}**Cerrado:** {{.Closed}}
{{end}}
{{if .Milestone}}**Milestone:** {{.Milestone}}

{{end}}{{if .Labels}}**Labels:** {{.Labels}}

{{end}}{{.Body}}

---

{{end}}`))

	docsTemplate = template.Must(template.New("docs").Parse(`---
layout: default
title: Documentación Detallada
---

# Documentación Detallada del Proyecto

_Última actualización: {{.Updated}}_

## Resumen de Milestones

| Milestone | Estado | Fecha Límite |
|-----------|--------|--------------|
{{range .Milestones}}| {{.Title}} | {{.State}} | {{.DueOnCell}} |
{{end}}
## Detalles de Milestones

{{range .Milestones}}### {{.Title}}
**Estado:** {{.State}}
**Descripción:** {{.Description}}
{{if .DueOn}}**Fecha límite:** {{.DueOn}}
{{end}}
---

{{end}}## Issues Activos

{{range .Active}}### #{{.Number}}: {{.Title}}
**Estado:** open
**Creado:** {{.Created}}
{{if .Milestone}}**Milestone:** {{.Milestone}}
{{end}}{{if .Labels}}**Labels:** {{.Labels}}
{{end}}
{{.Body}}

---

{{end}}## Issues Cerrados

{{range .Closed}}### #{{.Number}}: {{.Title}}
**Estado:** closed
**Creado:** {{.Created}}
**Cerrado:** {{.Closed}}
{{if .Milestone}}**Milestone:** {{.Milestone}}
{{end}}{{if .Labels}}**Labels:** {{.Labels}}
{{end}}
{{.Body}}

---

{{end}}`))
)

// milestoneView is the display form of a milestone.
type milestoneView struct {
	Title       string
	State       string
	Description string
	DueOn       string
	DueOnCell   string
}

// issueView is the display form of an issue.
type issueView struct {
	Title     string
	Created   string
	Closed    string
	Milestone string
	Labels    string
	Body      string
	Number    int
}

// Renderer implements domain.WikiRenderer and domain.DocsRenderer.
type Renderer struct{}

var (
	_ domain.WikiRenderer = (*Renderer)(nil)
	_ domain.DocsRenderer = (*Renderer)(nil)
)

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// RenderWiki produces the four wiki pages: navigation, milestones,
// active issues, and closed issues. Input order is preserved. An empty
// snapshot yields no pages, which callers treat as nothing-to-publish.
func (r *Renderer) RenderWiki(issues []domain.Issue, milestones []domain.Milestone) []domain.Page {
	if len(issues) == 0 && len(milestones) == 0 {
		return nil
	}

	active, closed := partition(issues)

	return []domain.Page{
		{Name: PageHome, Content: execute(homeTemplate, nil)},
		{Name: PageMilestones, Content: execute(milestonesTemplate, milestoneViews(milestones))},
		{Name: PageActive, Content: execute(issuesTemplate, issuePage{
			Heading: "Issues Activos - Servicio MercadoPago",
			Issues:  issueViews(active, false),
		})},
		{Name: PageClosed, Content: execute(issuesTemplate, issuePage{
			Heading: "Issues Cerrados - Servicio MercadoPago",
			Issues:  issueViews(closed, true),
		})},
	}
}

// RenderDocs produces the Jekyll documentation page. The timestamp is
// injected so output stays deterministic under test.
func (r *Renderer) RenderDocs(issues []domain.Issue, milestones []domain.Milestone, now time.Time) domain.Page {
	active, closed := partition(issues)
	content := execute(docsTemplate, docsPage{
		Updated:    now.Format("2006-01-02 15:04:05"),
		Milestones: milestoneViews(milestones),
		Active:     issueViews(active, false),
		Closed:     issueViews(closed, true),
	})
	return domain.Page{Name: "project-documentation.md", Content: content}
}

type issuePage struct {
	Heading string
	Issues  []issueView
}

type docsPage struct {
	Updated    string
	Milestones []milestoneView
	Active     []issueView
	Closed     []issueView
}

// partition splits issues into active and closed by state, preserving
// input order. Every issue lands in exactly one bucket: anything not
// explicitly closed is treated as active.
func partition(issues []domain.Issue) (active, closed []domain.Issue) {
	for _, issue := range issues {
		if issue.State == domain.IssueClosed {
			closed = append(closed, issue)
		} else {
			active = append(active, issue)
		}
	}
	return active, closed
}

func milestoneViews(milestones []domain.Milestone) []milestoneView {
	views := make([]milestoneView, 0, len(milestones))
	for _, ms := range milestones {
		if !ms.IsValid() {
			continue
		}
		description := ms.Description
		if description == "" {
			description = placeholderBody
		}
		dueOn := ms.DueOn.String()
		dueOnCell := dueOn
		if dueOnCell == "" {
			dueOnCell = "No definida"
		}
		views = append(views, milestoneView{
			Title:       ms.Title,
			State:       string(ms.State),
			Description: description,
			DueOn:       dueOn,
			DueOnCell:   dueOnCell,
		})
	}
	return views
}

func issueViews(issues []domain.Issue, withClosedAt bool) []issueView {
	views := make([]issueView, 0, len(issues))
	for _, issue := range issues {
		v := issueView{
			Number:  issue.Number,
			Title:   issue.Title,
			Created: issue.CreatedAt.String(),
			Labels:  strings.Join(issue.Labels, ", "),
			Body:    issue.Body,
		}
		if v.Body == "" {
			v.Body = placeholderBody
		}
		if issue.Milestone.Valid {
			v.Milestone = issue.Milestone.Title
			if v.Milestone == "" {
				v.Milestone = placeholderTitle
			}
		}
		if withClosedAt {
			v.Closed = issue.ClosedAt.String()
			if v.Closed == "" {
				v.Closed = placeholderClosedAt
			}
		}
		views = append(views, v)
	}
	return views
}

// execute runs a template that cannot fail at execution time: all view
// data is plain strings prepared above.
func execute(t *template.Template, data any) string {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		// Templates are parsed at init and fed precomputed views.
		panic(err)
	}
	return sb.String()
}
