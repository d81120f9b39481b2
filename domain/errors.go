package domain

import (
	"errors"
)

// ErrProductNotFound distinguishes "no such product" from "product exists but
// has no qualifying neighbors", which is an empty list, not an error.
var ErrProductNotFound = errors.New("product not found")

var ErrUserNotFound = errors.New("user not found")

var ErrCategoryNotFound = errors.New("category not found")
