// Package usecase drives billing drafts through checkout.
package usecase

import "errors"

// ErrBillNotFound is returned for unknown or expired bill numbers.
var ErrBillNotFound = errors.New("bill not found")

// ErrBillExists is returned by DraftStore.Create when the number is taken.
var ErrBillExists = errors.New("bill number already in use")
