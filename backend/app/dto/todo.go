package dto

import (
	"todo-guard/backend/app/models"

	validation "github.com/go-ozzo/ozzo-validation"
)

// TodoRequest is the body of POST /todos and PUT /todos/{id}. Any owner the
// client sends is ignored; ownership comes from the token.
type TodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
}

func (r TodoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Description, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&r.Priority, validation.Required, validation.Min(1), validation.Max(5)),
	)
}

// Apply copies the request fields onto t.
func (r TodoRequest) Apply(t *models.Todo) {
	t.Title = r.Title
	t.Description = r.Description
	t.Priority = r.Priority
	t.Complete = r.Complete
}

var TodoSchema = mustSchema(`{
	"type": "object",
	"properties": {
		"title":       {"type": "string"},
		"description": {"type": "string"},
		"priority":    {"type": "integer"},
		"complete":    {"type": "boolean"}
	},
	"required": ["title", "description", "priority", "complete"]
}`)
