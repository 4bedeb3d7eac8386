package apperrors

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrMissingFields        = errors.New("missing required fields")
	ErrShowIDRequired       = errors.New("show id required")
	ErrTicketTypeIDRequired = errors.New("ticket type id required")

	ErrShowNotFound       = errors.New("show not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrUserNotFound       = errors.New("user not found")

	ErrDuplicateTicketType = errors.New("ticket type name already exists for this show")
	ErrTicketTypeInactive  = errors.New("ticket type is not on sale")
	ErrPriceMismatch       = errors.New("ticket price does not match")
	ErrTicketTypeInUse     = errors.New("ticket type has sold tickets")

	ErrMissingSignature      = errors.New("missing stripe-signature header")
	ErrInvalidSignature      = errors.New("invalid webhook signature")
	ErrStaleEvent            = errors.New("webhook event too old")
	ErrWebhookNotConfigured  = errors.New("webhook secret not configured")
	ErrIdentityNotConfigured = errors.New("identity provider not configured")
	ErrUnauthorized          = errors.New("unauthorized")
)
