package domain

import "errors"

var (
	// ErrAccountsFileCreated signals that no accounts file existed, so a
	// template was written and startup should stop for the operator.
	ErrAccountsFileCreated = errors.New("accounts file template created")
)
