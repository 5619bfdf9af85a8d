package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		users   []string
		want    []string
		wantErr bool
	}{
		{
			name:  "divides evenly",
			total: "60",
			users: []string{"alice", "bob", "carol"},
			want:  []string{"20", "20", "20"},
		},
		{
			name:  "remainder cents go to first users",
			total: "100",
			users: []string{"alice", "bob", "carol"},
			want:  []string{"33.34", "33.33", "33.33"},
		},
		{
			name:  "two remainder cents",
			total: "0.05",
			users: []string{"alice", "bob", "carol"},
			want:  []string{"0.02", "0.02", "0.01"},
		},
		{
			name:  "single participant gets everything",
			total: "12.99",
			users: []string{"alice"},
			want:  []string{"12.99"},
		},
		{
			name:  "cent count beyond int64",
			total: "100000000000000000000",
			users: []string{"alice", "bob"},
			want:  []string{"50000000000000000000", "50000000000000000000"},
		},
		{
			name:  "large total with remainder",
			total: "92233720368547758.09",
			users: []string{"alice", "bob"},
			want:  []string{"46116860184273879.05", "46116860184273879.04"},
		},
		{
			name:    "no participants should error",
			total:   "10",
			users:   []string{},
			wantErr: true,
		},
		{
			name:    "zero total should error",
			total:   "0",
			users:   []string{"alice"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := EqualSplit(dec(tt.total), tt.users)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EqualSplit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(shares) != len(tt.want) {
				t.Fatalf("expected %d shares, got %d", len(tt.want), len(shares))
			}
			sum := decimal.Zero
			for i, share := range shares {
				if share.UserID != tt.users[i] {
					t.Errorf("share %d user = %s, want %s", i, share.UserID, tt.users[i])
				}
				if !share.Amount.Equal(dec(tt.want[i])) {
					t.Errorf("share %d amount = %s, want %s", i, share.Amount, tt.want[i])
				}
				sum = sum.Add(share.Amount)
			}
			if !sum.Equal(Round(dec(tt.total))) {
				t.Errorf("shares sum to %s, want %s", sum, tt.total)
			}
		})
	}
}
