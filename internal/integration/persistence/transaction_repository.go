package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/domain/entity"
	domainerror "github.com/budgetloom/backend/internal/domain/error"
	"github.com/budgetloom/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	txModel := model.TransactionFromEntity(tx)
	result := r.db.WithContext(ctx).Create(txModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&txModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return txModel.ToEntity(), nil
}

// FindByUser retrieves a page of transactions for a user matching the
// filter, sorted by date (descending).
func (r *transactionRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter adapter.TransactionFilter) (*entity.TransactionListResult, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ?", userID)

	query = applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var txModels []model.TransactionModel
	result := query.
		Preload("Category").
		Order("date DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithCategory, len(txModels))
	for i, tm := range txModels {
		transactions[i] = tm.ToEntityWithCategory()
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &entity.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
	}, nil
}

// FindAllByUser retrieves every non-deleted transaction for a user,
// sorted by date (descending).
func (r *transactionRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var txModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(txModels))
	for i, tm := range txModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	txModel := model.TransactionFromEntity(tx)
	result := r.db.WithContext(ctx).Save(txModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a transaction.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// ApplyChange applies a categorization change to a single transaction.
// Only the fields a rule controls are written; everything else is left
// untouched.
func (r *transactionRepository) ApplyChange(ctx context.Context, userID uuid.UUID, change entity.TransactionChange) error {
	updates := map[string]any{
		"category_id": change.CategoryID,
		"tags":        pq.StringArray(change.Tags),
		"verified":    change.Verified,
		"assigned_to": change.AssignedTo,
		"updated_at":  time.Now().UTC(),
	}

	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ? AND user_id = ?", change.TransactionID, userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// applyFilter narrows a transaction query with the optional filter fields.
func applyFilter(query *gorm.DB, filter adapter.TransactionFilter) *gorm.DB {
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Verified != nil {
		query = query.Where("verified = ?", *filter.Verified)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.MinAmount != nil {
		query = query.Where("ABS(amount) >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("ABS(amount) <= ?", *filter.MaxAmount)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	return query
}
