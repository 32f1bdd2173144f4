package authorization

import (
	"context"
	"errors"
)

const (
	ObjectBooking  = "booking"
	ObjectService  = "service"
	ObjectPayment  = "payment"
	ObjectStock    = "stock"
	ObjectProvider = "provider"
	ObjectEmployee = "employee"
	ObjectCompany  = "company"
	ObjectUser     = "user"
	ObjectAudit    = "audit"
)

const (
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionDelete = "delete"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
)

type Service interface {
	// Authorize returns ErrForbidden when role may not perform action on object.
	Authorize(ctx context.Context, role, object, action string) error
}
