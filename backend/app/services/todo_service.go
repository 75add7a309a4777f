package services

import (
	"context"
	"errors"

	"todo-guard/backend/app/dto"
	"todo-guard/backend/app/models"
	"todo-guard/backend/app/policy"
	"todo-guard/backend/app/repo"

	"gorm.io/gorm"
)

// ErrTodoNotFound covers both a missing todo and one owned by someone else.
var ErrTodoNotFound = errors.New("todo not found")

type TodoService struct {
	todos *repo.TodoRepository
	users *repo.UserRepository
}

func NewTodoService(todos *repo.TodoRepository, users *repo.UserRepository) *TodoService {
	return &TodoService{todos: todos, users: users}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, policy.ErrNotOwner) {
		return ErrTodoNotFound
	}
	return err
}

func (s *TodoService) List(ctx context.Context, id *policy.Identity) ([]models.Todo, error) {
	if err := policy.Authenticated(id); err != nil {
		return nil, err
	}
	return s.todos.ListByOwner(ctx, id.UserID)
}

func (s *TodoService) Get(ctx context.Context, id *policy.Identity, todoID uint) (*models.Todo, error) {
	if err := policy.Authenticated(id); err != nil {
		return nil, err
	}
	t, err := s.todos.FindOwned(ctx, todoID, id.UserID)
	if err != nil {
		return nil, notFound(err)
	}
	if err := policy.CanAccessTodo(id, t); err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (s *TodoService) Create(ctx context.Context, id *policy.Identity, req dto.TodoRequest) (*models.Todo, error) {
	t := &models.Todo{}
	req.Apply(t)
	if err := policy.StampOwner(id, t); err != nil {
		return nil, err
	}
	// A signed token can outlive its user; never store a todo without an owner row.
	if _, err := s.users.FindByID(ctx, t.OwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policy.ErrUnauthenticated
		}
		return nil, err
	}
	if err := s.todos.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TodoService) Update(ctx context.Context, id *policy.Identity, todoID uint, req dto.TodoRequest) (*models.Todo, error) {
	t, err := s.Get(ctx, id, todoID)
	if err != nil {
		return nil, err
	}
	req.Apply(t)
	if err := s.todos.UpdateOwned(ctx, t); err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, id *policy.Identity, todoID uint) error {
	if err := policy.Authenticated(id); err != nil {
		return err
	}
	return notFound(s.todos.DeleteOwned(ctx, todoID, id.UserID))
}
