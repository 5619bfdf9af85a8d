package calculator

import (
	"testing"

	"github.com/mmynk/splitledger/internal/models"
)

func testUsers(ids ...string) map[string]*models.User {
	users := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		users[id] = &models.User{ID: id, DisplayName: id, Email: id + "@example.com"}
	}
	return users
}

func TestCalculateBalances(t *testing.T) {
	splits := []SplitForBalance{
		{PayerID: "alice", OwerID: "bob", Amount: dec("30")},
		{PayerID: "alice", OwerID: "carol", Amount: dec("20")},
		{PayerID: "bob", OwerID: "alice", Amount: dec("5")},
		{PayerID: "dave", OwerID: "alice", Amount: dec("40")},
		{PayerID: "carol", OwerID: "alice", Amount: dec("20")},
		{PayerID: "bob", OwerID: "carol", Amount: dec("100")}, // not involving alice
	}

	got := CalculateBalances("alice", splits, testUsers("bob", "carol", "dave"))

	if len(got.YouAreOwed) != 1 {
		t.Fatalf("YouAreOwed: expected 1 entry, got %d", len(got.YouAreOwed))
	}
	if got.YouAreOwed[0].User.ID != "bob" || !got.YouAreOwed[0].Amount.Equal(dec("25")) {
		t.Errorf("YouAreOwed[0] = %s %s, want bob 25", got.YouAreOwed[0].User.ID, got.YouAreOwed[0].Amount)
	}

	// carol nets to exactly zero and is dropped
	if len(got.YouOwe) != 1 {
		t.Fatalf("YouOwe: expected 1 entry, got %d", len(got.YouOwe))
	}
	if got.YouOwe[0].User.ID != "dave" || !got.YouOwe[0].Amount.Equal(dec("40")) {
		t.Errorf("YouOwe[0] = %s %s, want dave 40", got.YouOwe[0].User.ID, got.YouOwe[0].Amount)
	}

	if !got.Totals.ToMe.Equal(dec("25")) {
		t.Errorf("Totals.ToMe = %s, want 25", got.Totals.ToMe)
	}
	if !got.Totals.ByMe.Equal(dec("40")) {
		t.Errorf("Totals.ByMe = %s, want 40", got.Totals.ByMe)
	}
	if !got.Totals.Net.Equal(dec("-15")) {
		t.Errorf("Totals.Net = %s, want -15", got.Totals.Net)
	}
}

func TestCalculateBalances_SortedLargestFirst(t *testing.T) {
	splits := []SplitForBalance{
		{PayerID: "alice", OwerID: "bob", Amount: dec("5")},
		{PayerID: "alice", OwerID: "carol", Amount: dec("50")},
		{PayerID: "alice", OwerID: "dave", Amount: dec("5")},
		{PayerID: "alice", OwerID: "erin", Amount: dec("12.34")},
	}

	got := CalculateBalances("alice", splits, testUsers("bob", "carol", "dave", "erin"))

	want := []string{"carol", "erin", "bob", "dave"}
	if len(got.YouAreOwed) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got.YouAreOwed))
	}
	for i, id := range want {
		if got.YouAreOwed[i].User.ID != id {
			t.Errorf("YouAreOwed[%d] = %s, want %s", i, got.YouAreOwed[i].User.ID, id)
		}
	}
}

func TestCalculateBalances_SkipsUnresolvedUsers(t *testing.T) {
	splits := []SplitForBalance{
		{PayerID: "alice", OwerID: "bob", Amount: dec("10")},
		{PayerID: "alice", OwerID: "ghost", Amount: dec("99")},
		{PayerID: "ghost", OwerID: "alice", Amount: dec("1")},
	}

	got := CalculateBalances("alice", splits, testUsers("bob"))

	if len(got.YouAreOwed) != 1 || got.YouAreOwed[0].User.ID != "bob" {
		t.Fatalf("expected only bob in YouAreOwed, got %+v", got.YouAreOwed)
	}
	if len(got.YouOwe) != 0 {
		t.Errorf("expected empty YouOwe, got %d entries", len(got.YouOwe))
	}
	if !got.Totals.ToMe.Equal(dec("10")) {
		t.Errorf("Totals.ToMe = %s, want 10 (unresolved users excluded)", got.Totals.ToMe)
	}
}

func TestCalculateBalances_NoSplits(t *testing.T) {
	got := CalculateBalances("alice", nil, testUsers("bob"))

	if got.YouAreOwed == nil || got.YouOwe == nil {
		t.Fatal("expected empty, non-nil lists")
	}
	if len(got.YouAreOwed) != 0 || len(got.YouOwe) != 0 {
		t.Errorf("expected empty lists, got %d/%d", len(got.YouAreOwed), len(got.YouOwe))
	}
	if !got.Totals.ToMe.IsZero() || !got.Totals.ByMe.IsZero() || !got.Totals.Net.IsZero() {
		t.Errorf("expected zero totals, got %+v", got.Totals)
	}
}

func TestCalculateBalances_SelfSplitExcluded(t *testing.T) {
	splits := []SplitForBalance{
		{PayerID: "alice", OwerID: "alice", Amount: dec("15")},
	}

	got := CalculateBalances("alice", splits, testUsers("alice"))
	if len(got.YouAreOwed) != 0 || len(got.YouOwe) != 0 {
		t.Errorf("self-split produced entries: %+v", got)
	}

	summary := CalculateSummary("alice", splits, nil, FallbackDisabled)
	if !summary.OwedByMe.IsZero() || !summary.OwedToMe.IsZero() {
		t.Errorf("self-split contributed to summary: %+v", summary)
	}
}

func TestCalculateBalances_TotalsNetIsDifference(t *testing.T) {
	splits := []SplitForBalance{
		{PayerID: "alice", OwerID: "bob", Amount: dec("10.111")},
		{PayerID: "alice", OwerID: "carol", Amount: dec("0.004")},
		{PayerID: "dave", OwerID: "alice", Amount: dec("3.333")},
		{PayerID: "erin", OwerID: "alice", Amount: dec("7.5")},
	}

	got := CalculateBalances("alice", splits, testUsers("bob", "carol", "dave", "erin"))
	if !got.Totals.Net.Equal(got.Totals.ToMe.Sub(got.Totals.ByMe)) {
		t.Errorf("Net %s != ToMe %s - ByMe %s", got.Totals.Net, got.Totals.ToMe, got.Totals.ByMe)
	}
}

func TestCalculateBalances_SignMatchesSummary(t *testing.T) {
	// One counterparty per direction, so per-counterparty and global views
	// must agree on direction.
	splits := []SplitForBalance{
		{PayerID: "alice", OwerID: "bob", Amount: dec("8")},
		{PayerID: "alice", OwerID: "bob", Amount: dec("2")},
		{PayerID: "carol", OwerID: "alice", Amount: dec("4")},
	}

	balances := CalculateBalances("alice", splits, testUsers("bob", "carol"))
	summary := CalculateSummary("alice", splits, nil, FallbackOnZeroTotals)

	if !balances.Totals.ToMe.Equal(summary.OwedToMe) {
		t.Errorf("ToMe %s != OwedToMe %s", balances.Totals.ToMe, summary.OwedToMe)
	}
	if !balances.Totals.ByMe.Equal(summary.OwedByMe) {
		t.Errorf("ByMe %s != OwedByMe %s", balances.Totals.ByMe, summary.OwedByMe)
	}
	if balances.Totals.Net.Sign() != summary.Net.Sign() {
		t.Errorf("net sign mismatch: balances %s, summary %s", balances.Totals.Net, summary.Net)
	}
}

func TestCounterparties(t *testing.T) {
	splits := []SplitForBalance{
		{PayerID: "alice", OwerID: "carol", Amount: dec("1")},
		{PayerID: "bob", OwerID: "alice", Amount: dec("1")},
		{PayerID: "alice", OwerID: "alice", Amount: dec("1")},
		{PayerID: "dave", OwerID: "erin", Amount: dec("1")},
	}

	got := Counterparties("alice", splits)
	want := []string{"bob", "carol"}
	if len(got) != len(want) {
		t.Fatalf("Counterparties = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Counterparties[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
