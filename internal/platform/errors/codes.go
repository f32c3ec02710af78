// Package errors provides structured error handling for the booking engine.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Reservation request errors
	CodeIntervalInvalid   Code = "INTERVAL_INVALID"
	CodeDurationExceeded  Code = "DURATION_EXCEEDED"
	CodeLeadTimeTooShort  Code = "LEAD_TIME_TOO_SHORT"
	CodeReservationConflict Code = "RESERVATION_CONFLICT"

	// Cancellation errors
	CodeReservationNotFound Code = "RESERVATION_NOT_FOUND"
	CodeAlreadyCancelled    Code = "RESERVATION_ALREADY_CANCELLED"
	CodeNotAuthorized       Code = "RESERVATION_NOT_AUTHORIZED"
	CodeTooLateToCancel     Code = "RESERVATION_TOO_LATE_TO_CANCEL"

	// Ledger errors
	CodeInsufficientFunds Code = "LEDGER_INSUFFICIENT_FUNDS"
	CodeInvalidAmount     Code = "LEDGER_INVALID_AMOUNT"
	CodeAccountNotFound   Code = "LEDGER_ACCOUNT_NOT_FOUND"

	// Catalog errors
	CodeResourceNotFound Code = "RESOURCE_NOT_FOUND"

	// Slot query errors
	CodeSlotWidthInvalid Code = "SLOT_WIDTH_INVALID"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeIntervalInvalid,
		CodeDurationExceeded,
		CodeLeadTimeTooShort,
		CodeInvalidAmount,
		CodeSlotWidthInvalid:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeAlreadyCancelled,
		CodeTooLateToCancel,
		CodeInsufficientFunds:
		return codes.FailedPrecondition

	// Aborted - lost a race against a concurrent writer
	case CodeReservationConflict:
		return codes.Aborted

	// NotFound - record doesn't exist
	case CodeReservationNotFound,
		CodeResourceNotFound,
		CodeAccountNotFound:
		return codes.NotFound

	// PermissionDenied - requester may not act on this record
	case CodeNotAuthorized:
		return codes.PermissionDenied

	default:
		return codes.Internal
	}
}
