package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/ironstore/internal/logger"
)

// Update handles all incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case productsMsg:
		m.products = msg
		m.loading = false
		if m.cursor >= len(m.products) {
			m.cursor = 0
		}
		return m, nil

	case deletedMsg:
		m.message = fmt.Sprintf("deleted %s", string(msg))
		return m, m.fetchProducts

	case toggledMsg:
		stock := "out of stock"
		if msg.InStock {
			stock = "in stock"
		}
		m.message = fmt.Sprintf("%s is now %s", msg.Title, stock)
		return m, m.fetchProducts

	case errMsg:
		logger.Error("browser action failed", logger.F("error", msg.err))
		m.loading = false
		m.message = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Refresh):
		m.loading = true
		m.message = ""
		return m, m.fetchProducts

	case key.Matches(msg, keys.Toggle):
		if !m.loggedIn {
			m.message = "login required: ironstore auth login"
			return m, nil
		}
		if p := m.currentProduct(); p != nil {
			return m, m.toggleStock(*p)
		}

	case key.Matches(msg, keys.Delete):
		if !m.loggedIn {
			m.message = "login required: ironstore auth login"
			return m, nil
		}
		if p := m.currentProduct(); p != nil {
			return m, m.deleteProduct(p.ID)
		}
	}

	return m, nil
}
