package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrNotFound matches every *NotFoundError through errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a referenced entity that does not exist, or a partner
// whose type does not match the operation.
type NotFoundError struct {
	Entity  string
	Message string
}

func (e *NotFoundError) Error() string        { return e.Message }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(entity, msg string) *NotFoundError {
	return &NotFoundError{Entity: entity, Message: msg}
}

// InsufficientStockError reports an outbound line that asks for more than is on hand.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Current     decimal.Decimal
	// HasRecord is false when the warehouse holds no stock row for the product.
	HasRecord bool
}

func (e *InsufficientStockError) Error() string {
	current := "0"
	if e.HasRecord {
		current = e.Current.StringFixed(2)
	}
	return fmt.Sprintf("商品 %s 库存不足，当前库存: %s", e.ProductName, current)
}

// ValidationError reports a malformed request caught before any persistence.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// InternalError wraps any failure that is not one of the known kinds above.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string { return e.Err.Error() }
func (e *InternalError) Unwrap() error { return e.Err }

// classify passes known error kinds through unchanged and wraps everything
// else exactly once as an InternalError.
func classify(op string, err error) error {
	var (
		nf *NotFoundError
		is *InsufficientStockError
		ve *ValidationError
		ie *InternalError
	)
	switch {
	case errors.As(err, &nf), errors.As(err, &is), errors.As(err, &ve), errors.As(err, &ie):
		return err
	}
	return &InternalError{Op: op, Err: err}
}

// lookupErr turns gorm.ErrRecordNotFound into a NotFoundError carrying msg.
func lookupErr(err error, entity, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, msg)
	}
	return err
}
