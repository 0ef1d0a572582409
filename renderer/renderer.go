package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/contracts"
)

//go:embed *.md
var templates embed.FS

var funcs = template.FuncMap{
	"cell": cell,
}

// RenderDashboard renders the executive dashboard to a markdown string.
func RenderDashboard(d *contracts.Dashboard) string {
	partials := map[string]string{
		"dashboard_title":     "dashboard_title.md",
		"dashboard_contracts": "dashboard_contracts.md",
		"dashboard_budget":    "dashboard_budget.md",
		"dashboard_agenda":    "dashboard_agenda.md",
		"dashboard_profile":   "dashboard_profile.md",
		"dashboard_alerts":    "dashboard_alerts.md",
	}
	return renderTemplate("dashboard", "dashboard.md", partials, d)
}

// ContractRenderOptions holds configuration for rendering a contract audit.
type ContractRenderOptions struct {
	SkipTimeline bool // Do not render the history section.
}

// RenderContract renders the audit of a contract to a markdown string.
func RenderContract(a *ContractAudit, opts ContractRenderOptions) string {
	partials := map[string]string{
		"contract_data":     "contract_data.md",
		"contract_exercise": "contract_exercise.md",
	}
	// An empty file name results in an empty template.
	if !opts.SkipTimeline {
		partials["contract_timeline"] = "contract_timeline.md"
	} else {
		partials["contract_timeline"] = ""
	}
	return renderTemplate("contract", "contract.md", partials, a)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// cell makes a text safe for a markdown table cell.
func cell(s string) string {
	s = strings.NewReplacer("|", `\|`, "\r", " ", "\n", " ").Replace(s)
	return strings.TrimSpace(s)
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n]) + "..."
	}
	return s
}
