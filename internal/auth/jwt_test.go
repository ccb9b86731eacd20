package auth

import (
	"context"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestIssueVerify_RoundTrip(t *testing.T) {
	token, err := Issue(testSecret, "fresh mart", KindSeller, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	p, err := Verify(token, testSecret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if p.Name != "fresh mart" || p.Kind != KindSeller {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	token, _ := Issue(testSecret, "ops", KindAdmin, time.Hour)
	if _, err := Verify(token, "other-secret"); err == nil {
		t.Fatalf("wrong secret must fail verification")
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	token, _ := Issue(testSecret, "ops", KindAdmin, -time.Minute)
	if _, err := Verify(token, testSecret); err == nil {
		t.Fatalf("expired token must fail verification")
	}
}

func TestVerify_KindIsNormalized(t *testing.T) {
	token, _ := Issue(testSecret, "ops", "ADMIN", time.Hour)
	p, err := Verify(token, testSecret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if p.Kind != KindAdmin {
		t.Fatalf("kind should be lowercased, got %q", p.Kind)
	}
}

func TestVerify_MissingClaims(t *testing.T) {
	token, _ := Issue(testSecret, "", KindSeller, time.Hour)
	if _, err := Verify(token, testSecret); err == nil {
		t.Fatalf("empty name claim must be rejected")
	}
}

func TestRequireAdmin(t *testing.T) {
	if err := RequireAdmin(&Principal{Name: "ops", Kind: KindAdmin}); err != nil {
		t.Fatalf("admin must pass: %v", err)
	}
	if err := RequireAdmin(&Principal{Name: "s", Kind: KindSeller}); err == nil {
		t.Fatalf("seller must be refused")
	}
	if err := RequireAdmin(nil); err == nil {
		t.Fatalf("nil principal must be refused")
	}
}

func TestParseBearer(t *testing.T) {
	token, _ := Issue(testSecret, "rider", KindDelivery, time.Hour)

	p, err := ParseBearer("Bearer "+token, testSecret)
	if err != nil || p.Kind != KindDelivery {
		t.Fatalf("bearer parse failed: %v %+v", err, p)
	}
	if _, err := ParseBearer("", testSecret); err == nil {
		t.Fatalf("missing header must fail")
	}
	if _, err := ParseBearer(token, testSecret); err == nil {
		t.Fatalf("missing scheme must fail")
	}
	if _, err := ParseBearer("Basic "+token, testSecret); err == nil {
		t.Fatalf("non-bearer scheme must fail")
	}
}

func TestPrincipalContext(t *testing.T) {
	p := &Principal{Name: "ops", Kind: KindAdmin}
	ctx := WithPrincipal(context.Background(), p)
	got, ok := FromContext(ctx)
	if !ok || got != p {
		t.Fatalf("principal not round-tripped through context")
	}
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("empty context must not yield a principal")
	}
}
