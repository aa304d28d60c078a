// Package tui is the interactive terminal browser for the product catalog.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/ironstore/internal/client"
	"github.com/existflow/ironstore/internal/logger"
	"github.com/existflow/ironstore/internal/model"
)

// Model is the browser's bubbletea model
type Model struct {
	api      *client.Client
	products []model.Product

	width   int
	height  int
	cursor  int
	loading bool
	message string

	loggedIn bool
}

// NewModel creates a browser model backed by the API client
func NewModel(api *client.Client) Model {
	logger.Info("initializing product browser")

	return Model{
		api:      api,
		loading:  true,
		loggedIn: api.IsLoggedIn(),
	}
}

// Init kicks off the initial catalog fetch
func (m Model) Init() tea.Cmd {
	return m.fetchProducts
}

// Messages

type productsMsg []model.Product

type deletedMsg string

type toggledMsg *model.Product

type errMsg struct{ err error }

// Commands

func (m Model) fetchProducts() tea.Msg {
	products, err := m.api.Products()
	if err != nil {
		return errMsg{err}
	}
	return productsMsg(products)
}

func (m Model) deleteProduct(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.api.DeleteProduct(id); err != nil {
			return errMsg{err}
		}
		return deletedMsg(id)
	}
}

func (m Model) toggleStock(p model.Product) tea.Cmd {
	return func() tea.Msg {
		inStock := !p.InStock
		updated, err := m.api.UpdateProduct(p.ID, &model.ProductPatch{InStock: &inStock})
		if err != nil {
			return errMsg{err}
		}
		return toggledMsg(updated)
	}
}

func (m *Model) currentProduct() *model.Product {
	if m.cursor < len(m.products) {
		return &m.products[m.cursor]
	}
	return nil
}
