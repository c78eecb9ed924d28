package checklist

import "errors"

var (
	// ErrInvalidCategory indicates a category outside the fixed five.
	ErrInvalidCategory = errors.New("invalid checklist category")
	// ErrInvalidItemID indicates a missing item id.
	ErrInvalidItemID = errors.New("invalid checklist item id")
)
