package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"todo-guard/backend/app/dto"
	"todo-guard/backend/app/models"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 10 * time.Second

type todosLoadedMsg struct{ todos []models.Todo }

type todoChangedMsg struct{ status string }

// openFormMsg asks the root model to show the form. A nil Todo means create.
type openFormMsg struct{ todo *models.Todo }

type DashboardModel struct {
	Client *Client
	Table  table.Model
	Todos  []models.Todo
	Status string
	Err    error
}

func NewDashboardModel(c *Client, height int) DashboardModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Title", Width: 28},
		{Title: "Pri", Width: 4},
		{Title: "Done", Width: 5},
		{Title: "Description", Width: 40},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)
	t.SetStyles(todoTableStyles())

	return DashboardModel{Client: c, Table: t}
}

func tableHeight(h int) int {
	if h-10 < 5 {
		return 5
	}
	return h - 10
}

func (m DashboardModel) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m DashboardModel) refreshCmd() tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		todos, err := c.ListTodos(ctx)
		if err != nil {
			return errMsg{err}
		}
		return todosLoadedMsg{todos: todos}
	}
}

func (m DashboardModel) selected() *models.Todo {
	row := m.Table.SelectedRow()
	if len(row) == 0 {
		return nil
	}
	id, err := strconv.ParseUint(row[0], 10, 64)
	if err != nil {
		return nil
	}
	for i := range m.Todos {
		if m.Todos[i].ID == uint(id) {
			t := m.Todos[i]
			return &t
		}
	}
	return nil
}

func (m DashboardModel) toggleCmd(t models.Todo) tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		req := dto.TodoRequest{Title: t.Title, Description: t.Description, Priority: t.Priority, Complete: !t.Complete}
		if _, err := c.UpdateTodo(ctx, t.ID, req); err != nil {
			return errMsg{err}
		}
		return todoChangedMsg{status: fmt.Sprintf("todo %d updated", t.ID)}
	}
}

func (m DashboardModel) deleteCmd(id uint) tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := c.DeleteTodo(ctx, id); err != nil {
			return errMsg{err}
		}
		return todoChangedMsg{status: fmt.Sprintf("todo %d deleted", id)}
	}
}

func (m *DashboardModel) setTodos(todos []models.Todo) {
	m.Todos = todos
	rows := make([]table.Row, 0, len(todos))
	for _, t := range todos {
		done := ""
		if t.Complete {
			done = "x"
		}
		rows = append(rows, table.Row{strconv.FormatUint(uint64(t.ID), 10), t.Title, strconv.Itoa(t.Priority), done, t.Description})
	}
	m.Table.SetRows(rows)
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todosLoadedMsg:
		m.Err = nil
		m.setTodos(msg.todos)
		return m, nil
	case todoChangedMsg:
		m.Err = nil
		m.Status = msg.status
		return m, m.refreshCmd()
	case errMsg:
		m.Err = msg.err
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.Status = ""
			return m, m.refreshCmd()
		case "n":
			return m, func() tea.Msg { return openFormMsg{} }
		case "e", "enter":
			if t := m.selected(); t != nil {
				return m, func() tea.Msg { return openFormMsg{todo: t} }
			}
			return m, nil
		case "x":
			if t := m.selected(); t != nil {
				return m, m.toggleCmd(*t)
			}
			return m, nil
		case "d":
			if t := m.selected(); t != nil {
				return m, m.deleteCmd(t.ID)
			}
			return m, nil
		case "q":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m DashboardModel) counts() (open, done int) {
	for _, t := range m.Todos {
		if t.Complete {
			done++
		} else {
			open++
		}
	}
	return open, done
}

func (m DashboardModel) View() string {
	var b strings.Builder
	open, done := m.counts()
	b.WriteString(titleStyle.Render("Todos") + "  ")
	b.WriteString(openCountStyle.Render(fmt.Sprintf("%d open", open)) + blurredStyle.Render(" / "))
	b.WriteString(doneCountStyle.Render(fmt.Sprintf("%d done", done)) + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	b.WriteString(helpLine("n", "new", "e", "edit", "x", "toggle done", "d", "delete", "r", "refresh", "q", "quit"))
	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return docStyle.Render(b.String())
}
