package repository

import (
	"testing"

	"canteen-backend/models"

	"github.com/google/uuid"
)

func TestComputeTotal(t *testing.T) {
	// Idli 30 x2 plus Masala Tea 20 x1
	items := []models.OrderItem{
		{ProductID: uuid.New(), Quantity: 2, Price: 30},
		{ProductID: uuid.New(), Quantity: 1, Price: 20},
	}

	if got := ComputeTotal(items); got != 80 {
		t.Fatalf("expected total 80, got %d", got)
	}
}

func TestComputeTotalEmpty(t *testing.T) {
	if got := ComputeTotal(nil); got != 0 {
		t.Fatalf("expected total 0 for no items, got %d", got)
	}
}

func TestComputeTotalSingleLine(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: uuid.New(), Quantity: 7, Price: 120},
	}
	if got := ComputeTotal(items); got != 840 {
		t.Fatalf("expected total 840, got %d", got)
	}
}
