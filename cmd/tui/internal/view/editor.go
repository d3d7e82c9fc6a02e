package view

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/stefifm/dashboard/internal/form"
	"github.com/stefifm/dashboard/internal/invoice"
)

// editorValues is shared by the huh fields, so it must outlive copies of EditorModel.
type editorValues struct {
	customerID string
	amount     string
	status     string
}

// EditorModel creates a new invoice or edits an existing one.
type EditorModel struct {
	svc       *invoice.Service
	customers []*invoice.Customer

	// id is nil when creating.
	id     *uuid.UUID
	values *editorValues
	form   *huh.Form

	// state is the outcome of the last rejected submission.
	state  invoice.State
	saving bool
}

type editorDoneMsg struct{}

type editorResultMsg struct {
	result invoice.Result
}

func NewEditorModel(svc *invoice.Service, customers []*invoice.Customer, item *invoice.ListItem) EditorModel {
	m := EditorModel{
		svc:       svc,
		customers: customers,
		values:    &editorValues{status: string(invoice.StatusPending)},
	}

	if item != nil {
		id := item.ID
		m.id = &id
		m.values.customerID = item.CustomerID
		m.values.amount = AmountInput(item.Amount)
		m.values.status = string(item.Status)
	}

	m.form = m.newForm()

	return m
}

func (m EditorModel) Title() string {
	if m.id == nil {
		return "Create Invoice"
	}

	return "Edit Invoice"
}

func (m EditorModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	if msg, ok := msg.(editorResultMsg); ok {
		m.saving = false

		if msg.result.Redirected() {
			return m, func() tea.Msg { return editorDoneMsg{} }
		}

		m.state = *msg.result.State
		m.form = m.newForm()

		return m, m.form.Init()
	}

	if m.saving {
		return m, nil
	}

	updated, cmd := m.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.saving = true

	return m, m.submitCmd()
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(m.Title() + "\n\n")
	b.WriteString(m.form.View())

	if m.saving {
		b.WriteString("\n" + faintStyle.Render("Saving..."))
	}

	if m.state.Message != "" {
		b.WriteString("\n" + errorStyle.Render(m.state.Message))
	}

	fields := make([]string, 0, len(m.state.Errors))
	for field := range m.state.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		for _, msg := range m.state.Errors[field] {
			b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("• %s", msg)))
		}
	}

	return panelStyle.Render(b.String())
}

func (m EditorModel) newForm() *huh.Form {
	customers := make([]huh.Option[string], 0, len(m.customers))
	for _, c := range m.customers {
		customers = append(customers, huh.NewOption(c.Name, c.ID.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("customerId").
				Title("Customer").
				Options(customers...).
				Value(&m.values.customerID),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("Enter USD amount").
				Value(&m.values.amount),

			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("Pending", string(invoice.StatusPending)),
					huh.NewOption("Paid", string(invoice.StatusPaid)),
				).
				Value(&m.values.status),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m EditorModel) submitCmd() tea.Cmd {
	values := form.Values{
		"customerId": m.values.customerID,
		"amount":     m.values.amount,
		"status":     m.values.status,
	}
	prev := m.state

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if m.id == nil {
			return editorResultMsg{result: m.svc.CreateInvoice(ctx, prev, values)}
		}

		return editorResultMsg{result: m.svc.UpdateInvoice(ctx, *m.id, prev, values)}
	}
}
