package errors

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	t.Parallel()

	err := New(CodeReservationConflict, "interval already booked")
	if !errors.Is(err, New(CodeReservationConflict, "other message")) {
		t.Fatal("expected errors with the same code to match")
	}
	if errors.Is(err, New(CodeInsufficientFunds, "interval already booked")) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk io")
	err := Wrap(CodeUnknown, "load reservation", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
}

func TestCodeOfWalksChain(t *testing.T) {
	t.Parallel()

	inner := New(CodeInsufficientFunds, "balance 1000 below 3000")
	wrapped := fmt.Errorf("create reservation: %w", inner)
	if got := CodeOf(wrapped); got != CodeInsufficientFunds {
		t.Fatalf("code = %q, want %q", got, CodeInsufficientFunds)
	}
	if got := CodeOf(errors.New("plain")); got != CodeUnknown {
		t.Fatalf("code = %q, want %q", got, CodeUnknown)
	}
}

func TestGRPCCodeClassification(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code Code
		want codes.Code
	}{
		{CodeIntervalInvalid, codes.InvalidArgument},
		{CodeDurationExceeded, codes.InvalidArgument},
		{CodeLeadTimeTooShort, codes.InvalidArgument},
		{CodeInvalidAmount, codes.InvalidArgument},
		{CodeReservationConflict, codes.Aborted},
		{CodeInsufficientFunds, codes.FailedPrecondition},
		{CodeAlreadyCancelled, codes.FailedPrecondition},
		{CodeTooLateToCancel, codes.FailedPrecondition},
		{CodeReservationNotFound, codes.NotFound},
		{CodeResourceNotFound, codes.NotFound},
		{CodeAccountNotFound, codes.NotFound},
		{CodeNotAuthorized, codes.PermissionDenied},
		{CodeUnknown, codes.Internal},
	}
	for _, tc := range cases {
		if got := tc.code.GRPCCode(); got != tc.want {
			t.Fatalf("%s maps to %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestToGRPCStatusCarriesErrorInfo(t *testing.T) {
	t.Parallel()

	err := WithMetadata(CodeResourceNotFound, "no such resource", map[string]string{
		"resource_id": "res-1",
	})
	st, ok := status.FromError(err.ToGRPCStatus())
	if !ok {
		t.Fatal("expected a gRPC status error")
	}
	if st.Code() != codes.NotFound {
		t.Fatalf("status code = %v, want %v", st.Code(), codes.NotFound)
	}
	if st.Message() != "no such resource" {
		t.Fatalf("status message = %q", st.Message())
	}
	if len(st.Details()) == 0 {
		t.Fatal("expected ErrorInfo detail")
	}
}
