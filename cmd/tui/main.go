package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/stefifm/dashboard/cmd/tui/internal/view"
	"github.com/stefifm/dashboard/internal/auth"
	"github.com/stefifm/dashboard/internal/auth/credentials"
	authStore "github.com/stefifm/dashboard/internal/auth/store"
	"github.com/stefifm/dashboard/internal/config"
	"github.com/stefifm/dashboard/internal/database"
	"github.com/stefifm/dashboard/internal/invoice"
	invoiceStore "github.com/stefifm/dashboard/internal/invoice/store"
	"github.com/stefifm/dashboard/internal/pagecache"
)

type model struct {
	appName        string
	invoiceService *invoice.Service
	authService    *auth.Service
	cache          *pagecache.Cache
	session        *auth.Session

	currentView View

	loginView view.LoginModel
	listView  view.ListModel
}

type View int

const (
	ViewLogin View = 0
	ViewMenu  View = 1
	ViewList  View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	cache := pagecache.New(pagecache.Config{
		Enabled:         cfg.Cache.Enabled,
		TTL:             cfg.Cache.TTL,
		CleanupInterval: cfg.Cache.CleanupInterval,
	})

	tokens := auth.NewTokenIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	invoiceSvc := invoice.NewService(invoiceStore.New(db), cache)
	authSvc := auth.NewService(auth.Providers{
		auth.ProviderCredentials: credentials.New(authStore.New(db), tokens),
	})

	return model{
		appName:        cfg.App.Name,
		invoiceService: invoiceSvc,
		authService:    authSvc,
		cache:          cache,
		currentView:    ViewLogin,
		loginView:      view.NewLoginModel(authSvc),
		listView:       view.NewListModel(invoiceSvc, cache),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.invoiceService, m.cache)

				return m, m.listView.Init()
			case "2":
				m.session = nil
				m.currentView = ViewLogin
				m.loginView = view.NewLoginModel(m.authService)

				return m, m.loginView.Init()
			}
		}
	case view.LoggedInMsg:
		m.session = msg.Session
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"Signed in as " + m.session.Email + "\n\n" +
				"1. Invoices\n" +
				"2. Sign Out\n\n" +
				"q. Quit",
		)
	case ViewList:
		return m.listView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
