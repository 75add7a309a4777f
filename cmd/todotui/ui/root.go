package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateLogin state = iota
	stateDashboard
	stateForm
)

type RootModel struct {
	State     state
	Client    *Client
	Login     LoginModel
	Dashboard DashboardModel
	Form      FormModel
	Quitting  bool
	height    int
}

func NewRootModel(baseURL string) RootModel {
	return RootModel{State: stateLogin, Login: NewLoginModel(baseURL)}
}

func (m RootModel) Init() tea.Cmd {
	return m.Login.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		if m.State != stateLogin {
			m.Dashboard.Table.SetHeight(tableHeight(msg.Height))
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}
	case loggedInMsg:
		m.Client = msg.client
		m.State = stateDashboard
		m.Dashboard = NewDashboardModel(m.Client, m.height)
		return m, m.Dashboard.Init()
	case openFormMsg:
		m.State = stateForm
		m.Form = NewFormModel(m.Client, msg.todo)
		return m, nil
	case backMsg:
		m.State = stateDashboard
		return m, nil
	case todoChangedMsg:
		m.State = stateDashboard
	}

	var cmd tea.Cmd
	switch m.State {
	case stateLogin:
		m.Login, cmd = m.Login.Update(msg)
	case stateDashboard:
		m.Dashboard, cmd = m.Dashboard.Update(msg)
	case stateForm:
		m.Form, cmd = m.Form.Update(msg)
	}
	return m, cmd
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	switch m.State {
	case stateDashboard:
		return m.Dashboard.View()
	case stateForm:
		return m.Form.View()
	default:
		return m.Login.View()
	}
}
