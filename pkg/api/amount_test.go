package api

import (
	"encoding/json"
	"testing"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Amount
	}{
		{"string", `{"amount":"60.00"}`, "60.00"},
		{"integer", `{"amount":60}`, "60"},
		{"fraction", `{"amount":12.5}`, "12.5"},
		{"exponent", `{"amount":1e2}`, "1e2"},
		{"null", `{"amount":null}`, ""},
		{"missing", `{}`, ""},
		{"boolean kept raw", `{"amount":true}`, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in SplitInput
			if err := json.Unmarshal([]byte(tt.body), &in); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if in.Amount != tt.want {
				t.Errorf("Amount = %q, want %q", in.Amount, tt.want)
			}
		})
	}
}

func TestAmount_MarshalsAsString(t *testing.T) {
	data, err := json.Marshal(&SplitInput{UserID: "u1", Amount: "30"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if want := `{"user_id":"u1","amount":"30"}`; string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}
