package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/stefifm/dashboard/internal/invoice"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateSearch
	listStateEdit
	listStateConfirm
)

type ListModel struct {
	CommonModel
	svc   *invoice.Service
	views ViewCache

	state     listState
	table     table.Model
	search    textinput.Model
	items     []*invoice.ListItem
	customers []*invoice.Customer

	editor  EditorModel
	confirm *huh.Form
	// confirmed is bound to the delete confirmation.
	confirmed *bool

	query   string
	loading bool
	cached  bool
	err     error
	status  string
}

func NewListModel(svc *invoice.Service, views ViewCache) ListModel {
	columns := []table.Column{
		{Title: "Customer", Width: 20},
		{Title: "Email", Width: 28},
		{Title: "Amount", Width: 14},
		{Title: "Date", Width: 12},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "Search invoices..."
	search.Width = 40

	return ListModel{
		svc:       svc,
		views:     views,
		table:     t,
		search:    search,
		loading:   true,
		confirmed: new(bool),
	}
}

func (m ListModel) Title() string { return "Invoices" }
func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStateSearch:
		return "Enter: search | Esc: cancel"
	case listStateEdit:
		return "Navigate form | Esc: cancel"
	case listStateConfirm:
		return "Confirm delete | Esc: cancel"
	}

	return "Esc: back | /: search | n: new | e: edit | x: delete | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.loadCustomersCmd())
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.items = msg.items
		m.cached = msg.cached
		m.refreshTable()

		return m, nil

	case loadCustomersMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading customers: %v", msg.err)
			return m, nil
		}

		m.customers = msg.customers

		return m, nil

	case editorDoneMsg:
		m.state = listStateBrowse
		m.status = "Invoice saved."
		m.table.Focus()

		return m, m.loadCmd()

	case deleteMsg:
		m.state = listStateBrowse
		m.confirm = nil
		m.table.Focus()

		if msg.state != nil {
			m.status = msg.state.Message
			return m, nil
		}

		m.status = "Invoice deleted."

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 10)

		return m, nil
	}

	switch m.state {
	case listStateSearch:
		return m.updateSearch(msg)
	case listStateEdit:
		return m.updateEdit(msg)
	case listStateConfirm:
		return m.updateConfirm(msg)
	}

	return m.updateBrowse(msg)
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "/":
			m.state = listStateSearch
			m.search.SetValue(m.query)
			m.table.Blur()

			return m, m.search.Focus()
		case "n":
			return m.openEditor(nil)
		case "e":
			if item := m.selected(); item != nil {
				return m.openEditor(item)
			}

			return m, nil
		case "x":
			return m.openConfirm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = listStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		case tea.KeyEnter:
			m.state = listStateBrowse
			m.query = m.search.Value()
			m.search.Blur()
			m.table.Focus()
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m ListModel) openEditor(item *invoice.ListItem) (tea.Model, tea.Cmd) {
	if len(m.customers) == 0 {
		m.status = "No customers loaded."
		return m, nil
	}

	m.editor = NewEditorModel(m.svc, m.customers, item)
	m.state = listStateEdit
	m.status = ""
	m.table.Blur()

	return m, m.editor.Init()
}

func (m ListModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	return m, cmd
}

func (m ListModel) openConfirm() (tea.Model, tea.Cmd) {
	item := m.selected()
	if item == nil {
		return m, nil
	}

	*m.confirmed = false
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s invoice for %s?", FormatAmount(item.Amount), item.CustomerName)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(m.confirmed),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateConfirm
	m.status = ""
	m.table.Blur()

	return m, m.confirm.Init()
}

func (m ListModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.confirm = nil
		m.table.Focus()

		return m, nil
	}

	updated, cmd := m.confirm.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.confirm = f
	}

	if m.confirm.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.confirmed {
		m.state = listStateBrowse
		m.confirm = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.deleteCmd(m.selected())
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	query := "none"
	if m.query != "" {
		query = m.query
	}

	source := "database"
	if m.cached {
		source = "cache"
	}

	header := fmt.Sprintf("%s | [/] Search: %s | %d invoices from %s",
		m.Title(), activeStyle(query), len(m.items), source)

	if m.state == listStateSearch {
		header = "Search: " + m.search.View()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		faintStyle.Render(m.ShortHelp()),
	)

	switch m.state {
	case listStateEdit:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.editor.View())
	case listStateConfirm:
		if m.confirm != nil {
			content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Render(m.confirm.View()))
		}
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ListModel) selected() *invoice.ListItem {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, item := range m.items {
		rows = append(rows, table.Row{
			item.CustomerName,
			item.CustomerEmail,
			FormatAmount(item.Amount),
			FormatDate(item.Date),
			string(item.Status),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	items  []*invoice.ListItem
	cached bool
	err    error
}

func (m ListModel) loadCmd() tea.Cmd {
	query := m.query

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if v, ok := m.views.Get(ctx, invoice.ListPath, query); ok {
			if items, ok := v.([]*invoice.ListItem); ok {
				return loadListMsg{items: items, cached: true}
			}
		}

		items, err := m.svc.ListInvoices(ctx, invoice.ListFilter{Query: query})
		if err != nil {
			return loadListMsg{err: err}
		}

		m.views.Set(ctx, invoice.ListPath, query, items)

		return loadListMsg{items: items}
	}
}

type loadCustomersMsg struct {
	customers []*invoice.Customer
	err       error
}

func (m ListModel) loadCustomersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		customers, err := m.svc.ListCustomers(ctx)

		return loadCustomersMsg{customers: customers, err: err}
	}
}

type deleteMsg struct {
	state *invoice.State
}

func (m ListModel) deleteCmd(item *invoice.ListItem) tea.Cmd {
	if item == nil {
		return func() tea.Msg {
			return deleteMsg{state: &invoice.State{Message: "No invoice selected."}}
		}
	}

	id := item.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return deleteMsg{state: m.svc.DeleteInvoice(ctx, id)}
	}
}
