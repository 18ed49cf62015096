package rule

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/budgetloom/backend/internal/application/adapter"
	"github.com/budgetloom/backend/internal/domain/entity"
)

var errNotFound = errors.New("not found")

// fakeRuleRepo is an in-memory RuleRepository for use case tests.
type fakeRuleRepo struct {
	rules     []*entity.Rule
	lastOrder []uuid.UUID
	err       error
}

func (f *fakeRuleRepo) Create(_ context.Context, r *entity.Rule) error {
	if f.err != nil {
		return f.err
	}
	f.rules = append(f.rules, r)
	return nil
}

func (f *fakeRuleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Rule, error) {
	for _, r := range f.rules {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRuleRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Rule, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Rule
	for _, r := range f.rules {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRuleRepo) FindByUserWithCategory(_ context.Context, userID uuid.UUID) ([]*entity.RuleWithCategory, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.RuleWithCategory
	for _, r := range f.rules {
		if r.UserID == userID {
			out = append(out, &entity.RuleWithCategory{Rule: r})
		}
	}
	return out, nil
}

func (f *fakeRuleRepo) Update(_ context.Context, r *entity.Rule) error {
	if f.err != nil {
		return f.err
	}
	for i, existing := range f.rules {
		if existing.ID == r.ID {
			f.rules[i] = r
			return nil
		}
	}
	return errNotFound
}

func (f *fakeRuleRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	for i, r := range f.rules {
		if r.ID == id && r.UserID == userID {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (f *fakeRuleRepo) BulkDelete(_ context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	deleted := 0
	for _, id := range ids {
		for i, r := range f.rules {
			if r.ID == id && r.UserID == userID {
				f.rules = append(f.rules[:i], f.rules[i+1:]...)
				deleted++
				break
			}
		}
	}
	return deleted, nil
}

func (f *fakeRuleRepo) ReorderPositions(_ context.Context, _ uuid.UUID, ids []uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.lastOrder = ids
	return nil
}

func (f *fakeRuleRepo) MaxPriorityByUser(_ context.Context, userID uuid.UUID) (int, error) {
	max := 0
	for _, r := range f.rules {
		if r.UserID == userID && r.Priority > max {
			max = r.Priority
		}
	}
	return max, nil
}

func (f *fakeRuleRepo) MaxPositionByUser(_ context.Context, userID uuid.UUID) (int, error) {
	max := -1
	for _, r := range f.rules {
		if r.UserID == userID && r.Position > max {
			max = r.Position
		}
	}
	return max, nil
}

// fakeCategoryRepo is an in-memory CategoryRepository for use case tests.
type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	if c, ok := f.categories[id]; ok {
		return c, nil
	}
	return nil, errNotFound
}

func (f *fakeCategoryRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) ExistsByNameAndUser(_ context.Context, name string, userID uuid.UUID) (bool, error) {
	for _, c := range f.categories {
		if c.UserID == userID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.categories, id)
	return nil
}

// fakeMemberRepo is an in-memory MemberRepository for use case tests.
type fakeMemberRepo struct {
	members map[uuid.UUID]*entity.Member
}

func (f *fakeMemberRepo) Create(_ context.Context, m *entity.Member) error {
	f.members[m.ID] = m
	return nil
}

func (f *fakeMemberRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Member, error) {
	if m, ok := f.members[id]; ok {
		return m, nil
	}
	return nil, errNotFound
}

func (f *fakeMemberRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Member, error) {
	var out []*entity.Member
	for _, m := range f.members {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.members, id)
	return nil
}

// fakeTransactionRepo is an in-memory TransactionRepository for use case tests.
type fakeTransactionRepo struct {
	transactions []*entity.Transaction
	applied      []entity.TransactionChange
	failIDs      map[uuid.UUID]bool
}

func (f *fakeTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	f.transactions = append(f.transactions, tx)
	return nil
}

func (f *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, tx := range f.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeTransactionRepo) FindByUser(_ context.Context, userID uuid.UUID, _ adapter.TransactionFilter) (*entity.TransactionListResult, error) {
	result := &entity.TransactionListResult{}
	for _, tx := range f.transactions {
		if tx.UserID == userID {
			result.Transactions = append(result.Transactions, &entity.TransactionWithCategory{Transaction: tx})
			result.Total++
		}
	}
	return result, nil
}

func (f *fakeTransactionRepo) FindAllByUser(_ context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range f.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) Update(_ context.Context, _ *entity.Transaction) error {
	return nil
}

func (f *fakeTransactionRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (f *fakeTransactionRepo) ApplyChange(_ context.Context, userID uuid.UUID, change entity.TransactionChange) error {
	if f.failIDs[change.TransactionID] {
		return errors.New("apply failed")
	}
	for _, tx := range f.transactions {
		if tx.ID == change.TransactionID && tx.UserID == userID {
			categoryID := change.CategoryID
			tx.CategoryID = &categoryID
			tx.Tags = change.Tags
			tx.Verified = change.Verified
			tx.AssignedTo = change.AssignedTo
			f.applied = append(f.applied, change)
			return nil
		}
	}
	return errNotFound
}

// fakeRunLock is an in-memory RunLock for use case tests.
type fakeRunLock struct {
	held     map[uuid.UUID]bool
	releases int
}

func newFakeRunLock() *fakeRunLock {
	return &fakeRunLock{held: make(map[uuid.UUID]bool)}
}

func (f *fakeRunLock) Acquire(_ context.Context, userID uuid.UUID) (bool, error) {
	if f.held[userID] {
		return false, nil
	}
	f.held[userID] = true
	return true, nil
}

func (f *fakeRunLock) Release(_ context.Context, userID uuid.UUID) error {
	delete(f.held, userID)
	f.releases++
	return nil
}

// fakeEventPublisher records published events.
type fakeEventPublisher struct {
	topics []string
}

func (f *fakeEventPublisher) Publish(_ context.Context, topic string, _ uuid.UUID, _ any) error {
	f.topics = append(f.topics, topic)
	return nil
}

func (f *fakeEventPublisher) published(topic string) bool {
	for _, t := range f.topics {
		if t == topic {
			return true
		}
	}
	return false
}
