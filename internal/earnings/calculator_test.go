package earnings

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"groceryDeliveryManagement/models"
	"groceryDeliveryManagement/repository"
)

type stubSettings struct {
	s   *models.PlatformSettings
	err error
}

func (s stubSettings) Get(ctx context.Context) (*models.PlatformSettings, error) {
	return s.s, s.err
}

type stubLogs struct {
	logs []models.EarningLog
	err  error
}

func (s stubLogs) FindByOrder(ctx context.Context, orderID int64) ([]models.EarningLog, error) {
	return s.logs, s.err
}

func fp(v float64) *float64 { return &v }

func ip(v int64) *int64 { return &v }

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func testSettings() ResolvedSettings {
	return ResolvedSettings{
		PlatformSettings: models.PlatformSettings{
			PlatformCommissionRate:    0.10,
			DeliveryAgentShareRate:    0.80,
			DeliveryChargeGrocery:     35,
			DeliveryChargeFood:        40,
			MinTotalForDeliveryCharge: 150,
		},
		Readable: true,
	}
}

func TestResolveSettings_ErrorFallsBackToDefaults(t *testing.T) {
	got := ResolveSettings(context.Background(), stubSettings{err: errors.New("db down")}, zap.NewNop())
	if got.Readable {
		t.Fatalf("settings must be marked unreadable on error")
	}
	if got.PlatformCommissionRate != DefaultCommissionRate || got.DeliveryAgentShareRate != DefaultAgentShareRate {
		t.Fatalf("default rates expected, got %+v", got)
	}
	if got.DeliveryChargeGrocery != 0 || got.DeliveryChargeFood != 0 {
		t.Fatalf("charges must degrade to zero, got %+v", got)
	}
}

func TestResolveSettings_AbsentRowFallsBackToDefaults(t *testing.T) {
	got := ResolveSettings(context.Background(), stubSettings{}, zap.NewNop())
	if got.Readable {
		t.Fatalf("absent settings must be treated as unreadable")
	}
}

func TestCompute_SellerEarnings(t *testing.T) {
	order := &models.Order{ID: 1}
	totals := []repository.SellerTotal{
		{SellerID: 11, ItemTotal: 200},
		{SellerID: 22, ItemTotal: 99.99},
	}
	calc := Calculator{Log: zap.NewNop()}
	b := calc.Compute(context.Background(), order, totals, testSettings())

	if len(b.Sellers) != 2 {
		t.Fatalf("expected 2 seller earnings, got %d", len(b.Sellers))
	}
	if s := b.Sellers[0]; s.SellerID != 11 || !approx(s.Commission, 20) || !approx(s.NetEarning, 180) {
		t.Fatalf("seller 11 earning mismatch: %+v", s)
	}
	if s := b.Sellers[1]; !approx(s.Commission, 10) || !approx(s.NetEarning, 89.99) {
		t.Fatalf("seller 22 earning mismatch: %+v", s)
	}
	if b.Agent != nil {
		t.Fatalf("no agent assigned, earnings_agent must be omitted, got %+v", b.Agent)
	}
}

func TestCompute_FreeDeliveryAboveThreshold(t *testing.T) {
	// Order total 300 > threshold 150: delivery is waived.
	order := &models.Order{ID: 2, Category: models.CategoryGrocery, DeliveryAgentID: ip(9)}
	totals := []repository.SellerTotal{{SellerID: 1, ItemTotal: 300}}
	calc := Calculator{Log: zap.NewNop()}
	b := calc.Compute(context.Background(), order, totals, testSettings())
	if b.Agent == nil {
		t.Fatalf("agent assigned, earnings_agent expected")
	}
	if b.Agent.DeliveryCharge != 0 || b.Agent.NetEarning != 0 {
		t.Fatalf("expected waived delivery charge, got %+v", b.Agent)
	}
}

func TestCompute_ChargeAtOrBelowThreshold(t *testing.T) {
	s := testSettings()
	s.DeliveryAgentShareRate = 0.75
	order := &models.Order{ID: 3, Category: models.CategoryGrocery, DeliveryAgentID: ip(9)}
	totals := []repository.SellerTotal{{SellerID: 1, ItemTotal: 120}}
	calc := Calculator{Log: zap.NewNop()}
	b := calc.Compute(context.Background(), order, totals, s)
	if b.Agent == nil || !approx(b.Agent.DeliveryCharge, 35) {
		t.Fatalf("expected grocery charge 35, got %+v", b.Agent)
	}
	if !approx(b.Agent.NetEarning, 26.25) {
		t.Fatalf("expected net earning 26.25, got %v", b.Agent.NetEarning)
	}
}

func TestCompute_FoodCategoryUsesFoodCharge(t *testing.T) {
	order := &models.Order{ID: 4, Category: models.CategoryFood, DeliveryAgentID: ip(9)}
	totals := []repository.SellerTotal{{SellerID: 1, ItemTotal: 100}}
	calc := Calculator{Log: zap.NewNop()}
	b := calc.Compute(context.Background(), order, totals, testSettings())
	if b.Agent == nil || !approx(b.Agent.DeliveryCharge, 40) {
		t.Fatalf("expected food charge 40, got %+v", b.Agent)
	}
	if !approx(b.Agent.NetEarning, 32) {
		t.Fatalf("expected net earning 32, got %v", b.Agent.NetEarning)
	}
}

func TestCompute_StoredChargeWins(t *testing.T) {
	order := &models.Order{ID: 5, Category: models.CategoryGrocery, DeliveryAgentID: ip(9), DeliveryCharge: fp(50)}
	totals := []repository.SellerTotal{{SellerID: 1, ItemTotal: 500}} // above threshold, irrelevant
	calc := Calculator{Log: zap.NewNop()}
	b := calc.Compute(context.Background(), order, totals, testSettings())
	if b.Agent == nil || !approx(b.Agent.DeliveryCharge, 50) || !approx(b.Agent.NetEarning, 40) {
		t.Fatalf("stored charge must win: %+v", b.Agent)
	}
}

func TestCompute_UnreadableSettings(t *testing.T) {
	// Commission falls back to 0.10 but the delivery charge basis is zero,
	// never a category default.
	settings := ResolveSettings(context.Background(), stubSettings{err: errors.New("down")}, zap.NewNop())
	order := &models.Order{ID: 6, Category: models.CategoryGrocery, DeliveryAgentID: ip(9)}
	totals := []repository.SellerTotal{{SellerID: 1, ItemTotal: 50}}
	calc := Calculator{Log: zap.NewNop()}
	b := calc.Compute(context.Background(), order, totals, settings)
	if len(b.Sellers) != 1 || !approx(b.Sellers[0].Commission, 5) || !approx(b.Sellers[0].NetEarning, 45) {
		t.Fatalf("commission should use default 0.10: %+v", b.Sellers)
	}
	if b.Agent == nil || b.Agent.DeliveryCharge != 0 || b.Agent.NetEarning != 0 {
		t.Fatalf("delivery charge must degrade to zero: %+v", b.Agent)
	}
}

func TestCompute_AdminOverride(t *testing.T) {
	order := &models.Order{
		ID: 7, Category: models.CategoryGrocery, DeliveryAgentID: ip(9),
		AdminPaysAgent: true, AdminAgentPayment: 55.5,
		DeliveryCharge: fp(10),
	}
	calc := Calculator{Log: zap.NewNop()}
	b := calc.Compute(context.Background(), order, []repository.SellerTotal{{SellerID: 1, ItemTotal: 10}}, testSettings())
	if b.Agent == nil || !approx(b.Agent.NetEarning, 55.5) {
		t.Fatalf("admin override must pay the fixed amount: %+v", b.Agent)
	}
}

func TestCompute_AdminOverrideZeroFallsThrough(t *testing.T) {
	order := &models.Order{
		ID: 8, Category: models.CategoryGrocery, DeliveryAgentID: ip(9),
		AdminPaysAgent: true, AdminAgentPayment: 0,
		DeliveryCharge: fp(20),
	}
	calc := Calculator{Log: zap.NewNop()}
	b := calc.Compute(context.Background(), order, nil, testSettings())
	if b.Agent == nil || !approx(b.Agent.NetEarning, 16) {
		t.Fatalf("zero override must use the standard formula: %+v", b.Agent)
	}
}

func TestCompute_PrefersEarningLogs(t *testing.T) {
	logs := []models.EarningLog{
		{Role: models.EarningRoleSeller, OrderID: 9, SellerID: ip(3), ItemTotal: 123.45, PlatformCommission: 12.34, NetEarning: 111.11},
		{Role: models.EarningRoleDelivery, OrderID: 9, AgentID: ip(4), DeliveryCharge: 30, NetEarning: 24},
	}
	order := &models.Order{ID: 9, DeliveryAgentID: ip(4)}
	calc := Calculator{Logs: stubLogs{logs: logs}, Log: zap.NewNop()}
	b := calc.Compute(context.Background(), order, []repository.SellerTotal{{SellerID: 3, ItemTotal: 999}}, testSettings())
	if len(b.Sellers) != 1 || !approx(b.Sellers[0].NetEarning, 111.11) || !approx(b.Sellers[0].ItemTotal, 123.45) {
		t.Fatalf("persisted seller figures must be returned verbatim: %+v", b.Sellers)
	}
	if b.Agent == nil || !approx(b.Agent.NetEarning, 24) {
		t.Fatalf("persisted agent figures must be returned verbatim: %+v", b.Agent)
	}
}

func TestCompute_LogQueryErrorDegradesToComputation(t *testing.T) {
	order := &models.Order{ID: 10}
	calc := Calculator{Logs: stubLogs{err: errors.New("query failed")}, Log: zap.NewNop()}
	b := calc.Compute(context.Background(), order, []repository.SellerTotal{{SellerID: 1, ItemTotal: 100}}, testSettings())
	if len(b.Sellers) != 1 || !approx(b.Sellers[0].NetEarning, 90) {
		t.Fatalf("log error must silently recompute: %+v", b.Sellers)
	}
}

func TestRound2_HalfUp(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{26.25, 26.25},
		{26.255, 26.26},
		{0.005, 0.01},
		{99.994, 99.99},
	}
	for _, c := range cases {
		if got := round2(c.in); !approx(got, c.want) {
			t.Fatalf("round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
