package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/evmartins/bookhold/internal/booking/domain"
	"github.com/evmartins/bookhold/internal/booking/service"
	"github.com/evmartins/bookhold/internal/booking/storage/sqlite"
)

func TestServerHealthAndBookingRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "booking.db")

	// Provision state before the server owns the database.
	seed, err := sqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open seed store: %v", err)
	}
	if err := seed.CreateAccount(context.Background(), domain.Account{ID: "acc-1", Name: "Ada", Balance: 100000}); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	if err := seed.CreateResource(context.Background(), domain.Resource{
		ID:         "room-1",
		Name:       "Studio",
		Kind:       domain.ResourceKindRoom,
		HourlyRate: 1500,
		OpenTime:   domain.ClockTime{Hour: 9},
		CloseTime:  domain.ClockTime{Hour: 21},
	}); err != nil {
		t.Fatalf("seed resource: %v", err)
	}
	if err := seed.Close(); err != nil {
		t.Fatalf("close seed store: %v", err)
	}

	srv, err := NewWithAddr("127.0.0.1:0", Config{DBPath: dbPath})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- srv.Serve(runCtx)
	}()
	t.Cleanup(func() {
		runCancel()
		select {
		case serveErr := <-serveDone:
			if serveErr != nil {
				t.Fatalf("serve: %v", serveErr)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for server shutdown")
		}
	})

	conn, err := grpc.NewClient(srv.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial booking server: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := conn.Close(); closeErr != nil {
			t.Fatalf("close gRPC connection: %v", closeErr)
		}
	})

	healthClient := grpc_health_v1.NewHealthClient(conn)
	checkCtx, checkCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer checkCancel()
	resp, err := healthClient.Check(checkCtx, &grpc_health_v1.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("health = %s, want SERVING", resp.GetStatus())
	}

	start := time.Now().UTC().Add(2 * time.Hour).Truncate(time.Minute)
	reservation, err := srv.Booking.CreateReservation(context.Background(), service.CreateReservationRequest{
		AccountID:  "acc-1",
		ResourceID: "room-1",
		Start:      start,
		End:        start.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	if reservation.Status != domain.ReservationConfirmed {
		t.Fatalf("status = %q, want confirmed", reservation.Status)
	}

	balance, err := srv.Ledger.Balance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 100000-1500 {
		t.Fatalf("balance = %d, want %d", balance, 100000-1500)
	}
}

func TestNewWithAddrRejectsBadTimezone(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "booking.db")
	if _, err := NewWithAddr("127.0.0.1:0", Config{DBPath: dbPath, Timezone: "Not/AZone"}); err == nil {
		t.Fatal("expected timezone error")
	}
}
