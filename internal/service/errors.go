package service

import (
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

var (
	errAdminOnly        = errors.New("only the admin can do this")
	errTripAccessDenied = errors.New("you do not have access to this trip")
	errNotOwnExpense    = errors.New("guests can only add expenses they paid themselves")
	errHasExpenses      = errors.New("participant still has expenses; remove them first")
)

var validationErrors = []error{
	models.ErrEmptyTitle,
	models.ErrEmptyName,
	models.ErrInvalidWeight,
	models.ErrInvalidAmount,
	models.ErrEmptyReason,
	models.ErrInvalidDate,
	models.ErrInvalidDateRange,
	models.ErrUnknownPayer,
}

// toConnectError maps store and validation errors to RPC errors and logs
// anything unexpected.
func toConnectError(op string, err error, attrs ...any) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return connect.NewError(connect.CodeInvalidArgument, err)
		}
	}
	slog.Error(op+" failed", append(attrs, "error", err)...)
	return connect.NewError(connect.CodeInternal, fmt.Errorf("%s failed", op))
}

func errParticipantNotFound(id string) error {
	return fmt.Errorf("participant %s: %w", id, storage.ErrNotFound)
}

func errExpenseNotFound(id string) error {
	return fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
}

func permissionDenied(err error) error {
	return connect.NewError(connect.CodePermissionDenied, err)
}
