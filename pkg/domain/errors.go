package domain

import "errors"

var (
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrAccountNotFound is returned when a referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound is returned when a referenced transaction does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDepositNotFound is returned when a referenced deposit does not exist.
	ErrDepositNotFound = errors.New("deposit not found")

	// ErrLoanNotFound is returned when a referenced loan does not exist.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrInvalidArgument is returned for malformed input: bad account numbers,
	// out-of-range balances, unknown enum values, min > max filter ranges.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientFunds is returned when an outgoing transfer or amendment
	// would overdraw the sender's balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateAccountNumber is returned when an account number is already in use.
	ErrDuplicateAccountNumber = errors.New("account number already in use")

	// ErrOwnershipMismatch is returned when an account belongs to a different
	// user than the one asserted by the request.
	ErrOwnershipMismatch = errors.New("account belongs to another user")

	// ErrForbidden is returned when the acting user may not touch the resource.
	ErrForbidden = errors.New("operation not permitted for this user")

	// ErrAlreadyLinked is returned when an account already has a deposit.
	ErrAlreadyLinked = errors.New("account already has a deposit")

	// ErrDeleteFailed is returned when a delete did not reduce the persisted
	// row count as expected.
	ErrDeleteFailed = errors.New("delete did not remove the record")

	// ErrConflict is returned when a record still has dependent records that
	// block its deletion.
	ErrConflict = errors.New("record has dependent records")

	// ErrDuplicateEmail is returned when a user email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)
