package repository

import (
	"context"
	"errors"

	"github.com/bankhive/bankcore/pkg/domain"
	repo "github.com/bankhive/bankcore/pkg/repository"
	"gorm.io/gorm"
)

type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a loan repository over the given session.
func NewLoanRepository(db *gorm.DB) repo.LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	m := loanFromDomain(l)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	l.ID = m.ID
	return nil
}

func (r *loanRepository) Get(ctx context.Context, id uint) (*domain.Loan, error) {
	var m Loan
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *loanRepository) List(ctx context.Context, filter repo.LoanFilter) ([]*domain.Loan, error) {
	q := r.db.WithContext(ctx).Model(&Loan{})
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	var ms []Loan
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Loan, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toDomain())
	}
	return out, nil
}

func (r *loanRepository) CountByAccount(ctx context.Context, accountID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Loan{}).Where("account_id = ?", accountID).Count(&n).Error
	return n, err
}

func (r *loanRepository) Update(ctx context.Context, l *domain.Loan) error {
	res := r.db.WithContext(ctx).Model(&Loan{}).Where("id = ?", l.ID).Updates(map[string]any{
		"amount":          l.Amount,
		"interest_rate":   l.InterestRate,
		"start_date":      l.StartDate,
		"end_date":        l.EndDate,
		"monthly_payment": l.MonthlyPayment,
		"status":          string(l.Status),
		"account_id":      l.AccountID,
		"user_id":         l.UserID,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}

func (r *loanRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Loan{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}
