package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"todo-guard/backend/app/dto"
	"todo-guard/backend/app/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type backMsg struct{}

const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
)

// FormModel creates a todo, or edits one when Editing is set.
type FormModel struct {
	Client  *Client
	Editing *models.Todo
	Inputs  []textinput.Model
	Focused int
	Err     error
}

func NewFormModel(c *Client, todo *models.Todo) FormModel {
	inputs := make([]textinput.Model, 3)

	inputs[fieldTitle] = textinput.New()
	inputs[fieldTitle].Prompt = "Title: "
	inputs[fieldTitle].Placeholder = "what needs doing"

	inputs[fieldDescription] = textinput.New()
	inputs[fieldDescription].Prompt = "Description: "
	inputs[fieldDescription].Placeholder = "up to 100 characters"
	inputs[fieldDescription].CharLimit = 100

	inputs[fieldPriority] = textinput.New()
	inputs[fieldPriority].Prompt = "Priority (1-5): "
	inputs[fieldPriority].CharLimit = 1
	inputs[fieldPriority].SetValue("3")

	if todo != nil {
		inputs[fieldTitle].SetValue(todo.Title)
		inputs[fieldDescription].SetValue(todo.Description)
		inputs[fieldPriority].SetValue(strconv.Itoa(todo.Priority))
	}
	inputs[fieldTitle].Focus()
	inputs[fieldTitle].PromptStyle = focusedStyle

	return FormModel{Client: c, Editing: todo, Inputs: inputs}
}

// Request builds the payload from the current inputs.
func (m FormModel) Request() (dto.TodoRequest, error) {
	prio, err := strconv.Atoi(strings.TrimSpace(m.Inputs[fieldPriority].Value()))
	if err != nil {
		return dto.TodoRequest{}, fmt.Errorf("priority must be a number")
	}
	req := dto.TodoRequest{
		Title:       strings.TrimSpace(m.Inputs[fieldTitle].Value()),
		Description: strings.TrimSpace(m.Inputs[fieldDescription].Value()),
		Priority:    prio,
	}
	if m.Editing != nil {
		req.Complete = m.Editing.Complete
	}
	return req, dto.CheckRules(req)
}

func (m FormModel) submitCmd(req dto.TodoRequest) tea.Cmd {
	c, editing := m.Client, m.Editing
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if editing != nil {
			if _, err := c.UpdateTodo(ctx, editing.ID, req); err != nil {
				return errMsg{err}
			}
			return todoChangedMsg{status: fmt.Sprintf("todo %d saved", editing.ID)}
		}
		t, err := c.CreateTodo(ctx, req)
		if err != nil {
			return errMsg{err}
		}
		return todoChangedMsg{status: fmt.Sprintf("todo %d created", t.ID)}
	}
}

func (m *FormModel) focus(i int) {
	m.Inputs[m.Focused].Blur()
	m.Inputs[m.Focused].PromptStyle = blurredStyle
	m.Focused = (i + len(m.Inputs)) % len(m.Inputs)
	m.Inputs[m.Focused].Focus()
	m.Inputs[m.Focused].PromptStyle = focusedStyle
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case errMsg:
		m.Err = msg.err
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return backMsg{} }
		case tea.KeyEnter:
			if m.Focused < len(m.Inputs)-1 {
				m.focus(m.Focused + 1)
				return m, nil
			}
			req, err := m.Request()
			if err != nil {
				m.Err = err
				return m, nil
			}
			m.Err = nil
			return m, m.submitCmd(req)
		case tea.KeyTab, tea.KeyDown:
			m.focus(m.Focused + 1)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.focus(m.Focused - 1)
			return m, nil
		}
	}

	cmds := make([]tea.Cmd, len(m.Inputs))
	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m FormModel) View() string {
	title := "New todo"
	if m.Editing != nil {
		title = fmt.Sprintf("Edit todo %d", m.Editing.ID)
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View() + "\n")
	}
	b.WriteString("\n" + helpLine("enter", "save", "esc", "cancel"))
	if m.Err != nil {
		b.WriteString("\n\n" + errorMessageStyle(m.Err.Error()))
	}
	return docStyle.Render(b.String())
}
