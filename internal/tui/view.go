package tui

import (
	"fmt"
	"strings"
)

// View renders the browser
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("IronStore — product catalog"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(ListStyle.Render("Loading catalog..."))
		return b.String()
	}

	if len(m.products) == 0 {
		b.WriteString(ListStyle.Render("Catalog is empty."))
	} else {
		var rows []string
		for i, p := range m.products {
			stock := OutStockStyle.Render("✗ out")
			if p.InStock {
				stock = InStockStyle.Render("✓ in ")
			}

			title := p.Title
			if len(title) > 40 {
				title = title[:37] + "..."
			}

			row := fmt.Sprintf("%-40s  %8.2f  %s", title, p.Price, stock)
			if i == m.cursor {
				rows = append(rows, ItemSelectedStyle.Render("› "+row))
			} else {
				rows = append(rows, ItemStyle.Render("  "+row))
			}
		}
		b.WriteString(ListStyle.Render(strings.Join(rows, "\n")))
	}

	b.WriteString("\n")

	status := fmt.Sprintf("%d product(s)", len(m.products))
	if m.message != "" {
		status += "  ·  " + m.message
	}
	b.WriteString(StatusBarStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("  ↑/↓ move · r refresh · x toggle stock · d delete · q quit"))

	return b.String()
}
