package repository

import (
	"context"
	"math"
	"testing"

	"groceryDeliveryManagement/models"
)

func TestEarningRepository_UpsertsAreIdempotent(t *testing.T) {
	f := newFixture(t, "earnings")
	ctx := context.Background()
	seller, order := f.seedOrder(t, ctx)
	agent, err := f.agents.Create(ctx, &models.DeliveryAgent{Name: "a", Approved: true, Active: true, Available: true})
	if err != nil {
		t.Fatalf("seed agent: %v", err)
	}

	earnings := NewEarningRepository(f.db)

	if err := earnings.UpsertSeller(ctx, order.ID, seller.ID, 145, 14.5, 130.5); err != nil {
		t.Fatalf("seller upsert: %v", err)
	}
	if err := earnings.UpsertAgent(ctx, order.ID, agent.ID, 30, 24); err != nil {
		t.Fatalf("agent upsert: %v", err)
	}

	// Re-running with fresh figures must update in place, never duplicate.
	if err := earnings.UpsertSeller(ctx, order.ID, seller.ID, 145, 14.5, 129.99); err != nil {
		t.Fatalf("seller re-upsert: %v", err)
	}
	if err := earnings.UpsertAgent(ctx, order.ID, agent.ID, 30, 25.5); err != nil {
		t.Fatalf("agent re-upsert: %v", err)
	}

	logs, err := earnings.FindByOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected exactly 2 records, got %+v", logs)
	}
	// Sellers first, then the delivery record.
	if logs[0].Role != models.EarningRoleSeller || logs[0].SellerID == nil || *logs[0].SellerID != seller.ID {
		t.Fatalf("seller record mismatch: %+v", logs[0])
	}
	if math.Abs(logs[0].NetEarning-129.99) > 1e-9 {
		t.Fatalf("seller record not refreshed: %+v", logs[0])
	}
	if logs[1].Role != models.EarningRoleDelivery || logs[1].AgentID == nil || *logs[1].AgentID != agent.ID {
		t.Fatalf("delivery record mismatch: %+v", logs[1])
	}
	if math.Abs(logs[1].NetEarning-25.5) > 1e-9 {
		t.Fatalf("delivery record not refreshed: %+v", logs[1])
	}
}

func TestEarningRepository_FindByOrder_Empty(t *testing.T) {
	f := newFixture(t, "earningsempty")
	logs, err := NewEarningRepository(f.db).FindByOrder(context.Background(), 42)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("expected no records, got %+v", logs)
	}
}
