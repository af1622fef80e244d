package repository

import (
	"context"
	"errors"

	"github.com/bankhive/bankcore/pkg/domain"
	repo "github.com/bankhive/bankcore/pkg/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository over the given session.
func NewAccountRepository(db *gorm.DB) repo.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	m := accountFromDomain(a)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateAccountNumber
		}
		return err
	}
	a.ID = m.ID
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id uint) (*domain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *accountRepository) GetForUpdate(ctx context.Context, id uint) (*domain.Account, error) {
	q := r.db.WithContext(ctx)
	// sqlite has no FOR UPDATE; its single writer serializes these anyway.
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var m Account
	if err := q.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *accountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *accountRepository) List(ctx context.Context, filter repo.AccountFilter) ([]*domain.Account, error) {
	q := r.db.WithContext(ctx).Model(&Account{})
	if filter.Number != nil {
		q = q.Where("number = ?", *filter.Number)
	}
	if filter.MinBalance != nil {
		q = q.Where("balance >= ?", *filter.MinBalance)
	}
	if filter.MaxBalance != nil {
		q = q.Where("balance <= ?", *filter.MaxBalance)
	}
	if filter.Type != nil {
		q = q.Where("type = ?", string(*filter.Type))
	}
	var ms []Account
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	return accountsToDomain(ms), nil
}

func (r *accountRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.Account, error) {
	var ms []Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&ms).Error; err != nil {
		return nil, err
	}
	return accountsToDomain(ms), nil
}

func (r *accountRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Account{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *accountRepository) Update(ctx context.Context, a *domain.Account) error {
	res := r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", a.ID).Updates(map[string]any{
		"number":  a.Number,
		"balance": a.Balance,
		"type":    string(a.Type),
	})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateAccountNumber
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) UpdateBalance(ctx context.Context, id uint, balance decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", id).Update("balance", balance)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Account{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func accountsToDomain(ms []Account) []*domain.Account {
	out := make([]*domain.Account, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toDomain())
	}
	return out
}
