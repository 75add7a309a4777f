package controllers

import (
	"net/http"
	"strconv"

	"todo-guard/backend/app/dto"
	"todo-guard/backend/app/middleware"
	"todo-guard/backend/app/policy"
	"todo-guard/backend/app/services"
)

type TodoController struct{ Todos *services.TodoService }

func NewTodoController(todos *services.TodoService) *TodoController {
	return &TodoController{Todos: todos}
}

// todoID reads the {id} path segment; it must be a positive integer.
func todoID(r *http.Request) (uint, error) {
	n, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, dto.NewValidationError("id", "must be a positive integer")
	}
	return uint(n), nil
}

func (c *TodoController) List(w http.ResponseWriter, r *http.Request) {
	todos, err := c.Todos.List(r.Context(), middleware.GetIdentity(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	dto.WriteJSON(w, http.StatusOK, todos)
}

func (c *TodoController) Get(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	if err := policy.Authenticated(id); err != nil {
		writeError(w, r, err)
		return
	}
	tid, err := todoID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	t, err := c.Todos.Get(r.Context(), id, tid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	dto.WriteJSON(w, http.StatusOK, t)
}

func (c *TodoController) Create(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	if err := policy.Authenticated(id); err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.TodoRequest
	if err := dto.Decode(r.Body, dto.TodoSchema, &req); err != nil {
		writeError(w, r, err)
		return
	}
	t, err := c.Todos.Create(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	dto.WriteJSON(w, http.StatusCreated, t)
}

func (c *TodoController) Update(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	if err := policy.Authenticated(id); err != nil {
		writeError(w, r, err)
		return
	}
	tid, err := todoID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.TodoRequest
	if err := dto.Decode(r.Body, dto.TodoSchema, &req); err != nil {
		writeError(w, r, err)
		return
	}
	t, err := c.Todos.Update(r.Context(), id, tid, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	dto.WriteJSON(w, http.StatusOK, t)
}

func (c *TodoController) Delete(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	if err := policy.Authenticated(id); err != nil {
		writeError(w, r, err)
		return
	}
	tid, err := todoID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.Todos.Delete(r.Context(), id, tid); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
