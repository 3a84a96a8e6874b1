package pricing

import "errors"

var (
	// ErrInvalidOverride rejects a total redistribution before any
	// override is written.
	ErrInvalidOverride = errors.New("invalid total override")

	// ErrDiscountExceedsBase fires only under the reject discount policy;
	// the default policy clamps instead.
	ErrDiscountExceedsBase = errors.New("discount exceeds rental base")
)
