package models

import "testing"

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{
		"pending", "confirmed", "preparing", "ready",
		"out_for_delivery", "delivered", "cancelled",
	} {
		if _, ok := ParseOrderStatus(valid); !ok {
			t.Errorf("expected %q to parse", valid)
		}
	}

	for _, invalid := range []string{"", "shipped", "PENDING", "done"} {
		if _, ok := ParseOrderStatus(invalid); ok {
			t.Errorf("expected %q to be rejected", invalid)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusPreparing, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusPreparing, StatusReady, true},
		{StatusReady, StatusOutForDelivery, true},
		{StatusOutForDelivery, StatusDelivered, true},

		// Cancellation is forbidden once food is being prepared.
		{StatusPreparing, StatusCancelled, false},
		{StatusReady, StatusCancelled, false},
		{StatusOutForDelivery, StatusCancelled, false},

		// No resurrecting terminal orders.
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},

		// No skipping ahead or moving backwards.
		{StatusPending, StatusDelivered, false},
		{StatusConfirmed, StatusPending, false},
		{StatusReady, StatusPreparing, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("transition %s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, s := range []OrderStatus{StatusDelivered, StatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusOutForDelivery} {
		if s.IsTerminal() {
			t.Errorf("expected %s not to be terminal", s)
		}
	}
}

func TestCurrentLocation(t *testing.T) {
	if loc := StatusReady.CurrentLocation(); loc != "Ready for pickup at Canteen Counter" {
		t.Errorf("unexpected location for ready: %q", loc)
	}
	if loc := OrderStatus("bogus").CurrentLocation(); loc != "Madras Engineering College Canteen" {
		t.Errorf("unexpected fallback location: %q", loc)
	}
}
