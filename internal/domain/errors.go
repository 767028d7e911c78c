package domain

import "errors"

// Validation failures. Always client-correctable; mapped to 400.
var (
	ErrInvalidProperty      = errors.New("invalid property reference")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidShares        = errors.New("invalid shares")
	ErrInvalidBacker        = errors.New("invalid backer")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidShareQuantity = errors.New("invalid share quantity")
)

// Missing entities. Mapped to 404.
var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrOfferingNotFound = errors.New("offer not found")
	ErrUserNotFound     = errors.New("user not found")
)

// Business-rule conflicts. Forbidden, not malformed; mapped to 403.
var (
	ErrOfferingAlreadyOpen    = errors.New("existing open offering for this property")
	ErrAggregateLimitExceeded = errors.New("aggregate shares issued cannot exceed 1000")
	ErrBackerExists           = errors.New("backer exists")
	ErrOfferingClosed         = errors.New("offering already closed")
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotImplemented = errors.New("not implemented")
)
