package repository

import "context"

// UnitOfWork is the transaction boundary the services run inside. Repositories
// obtained from the UnitOfWork passed to Do share one DB session, so a transfer
// row and both balance updates commit or roll back together.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The UnitOfWork handed to
	// fn yields repositories bound to that transaction; any error rolls the
	// whole transaction back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
	DepositRepository() (DepositRepository, error)
	LoanRepository() (LoanRepository, error)
	UserRepository() (UserRepository, error)
}
