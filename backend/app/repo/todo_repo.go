package repo

import (
	"context"

	"todo-guard/backend/app/models"

	"gorm.io/gorm"
)

// TodoRepository scopes every read and write by owner id so a todo owned by
// someone else is indistinguishable from one that does not exist.
type TodoRepository struct{ db *gorm.DB }

func NewTodoRepository(db *gorm.DB) *TodoRepository { return &TodoRepository{db: db} }

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Todo, error) {
	todos := make([]models.Todo, 0)
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&todos).Error
	return todos, err
}

func (r *TodoRepository) FindOwned(ctx context.Context, id, ownerID uint) (*models.Todo, error) {
	var t models.Todo
	if err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TodoRepository) Create(ctx context.Context, t *models.Todo) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// UpdateOwned writes the mutable fields of t. The row must match both t.ID
// and t.OwnerID, otherwise gorm.ErrRecordNotFound is returned and nothing
// changes.
func (r *TodoRepository) UpdateOwned(ctx context.Context, t *models.Todo) error {
	res := r.db.WithContext(ctx).Model(&models.Todo{}).
		Where("id = ? AND owner_id = ?", t.ID, t.OwnerID).
		Updates(map[string]any{
			"title":       t.Title,
			"description": t.Description,
			"priority":    t.Priority,
			"complete":    t.Complete,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TodoRepository) DeleteOwned(ctx context.Context, id, ownerID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Todo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
