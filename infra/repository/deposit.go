package repository

import (
	"context"
	"errors"

	"github.com/bankhive/bankcore/pkg/domain"
	repo "github.com/bankhive/bankcore/pkg/repository"
	"gorm.io/gorm"
)

type depositRepository struct {
	db *gorm.DB
}

// NewDepositRepository creates a deposit repository over the given session.
func NewDepositRepository(db *gorm.DB) repo.DepositRepository {
	return &depositRepository{db: db}
}

func (r *depositRepository) Create(ctx context.Context, d *domain.Deposit) error {
	m := depositFromDomain(d)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyLinked
		}
		return err
	}
	d.ID = m.ID
	return nil
}

func (r *depositRepository) Get(ctx context.Context, id uint) (*domain.Deposit, error) {
	var m Deposit
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepositNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *depositRepository) GetByAccount(ctx context.Context, accountID uint) (*domain.Deposit, error) {
	var m Deposit
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepositNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *depositRepository) List(ctx context.Context) ([]*domain.Deposit, error) {
	var ms []Deposit
	if err := r.db.WithContext(ctx).Order("id asc").Find(&ms).Error; err != nil {
		return nil, err
	}
	return depositsToDomain(ms), nil
}

func (r *depositRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.Deposit, error) {
	var ms []Deposit
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&ms).Error; err != nil {
		return nil, err
	}
	return depositsToDomain(ms), nil
}

func (r *depositRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Deposit{}).Count(&n).Error
	return n, err
}

func (r *depositRepository) Update(ctx context.Context, d *domain.Deposit) error {
	res := r.db.WithContext(ctx).Model(&Deposit{}).Where("id = ?", d.ID).Updates(map[string]any{
		"amount":        d.Amount,
		"interest_rate": d.InterestRate,
		"start_date":    d.StartDate,
		"end_date":      d.EndDate,
		"status":        string(d.Status),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDepositNotFound
	}
	return nil
}

func (r *depositRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Deposit{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDepositNotFound
	}
	return nil
}

func depositsToDomain(ms []Deposit) []*domain.Deposit {
	out := make([]*domain.Deposit, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toDomain())
	}
	return out
}
