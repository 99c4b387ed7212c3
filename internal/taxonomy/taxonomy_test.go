package taxonomy

import (
	"testing"

	"github.com/steelscan/leadscan/internal/model"
)

func TestMatchLongestKeywordWins(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "longer keyword beats shorter",
			text: "Company to build solar park near Jodhpur",
			want: "Renewable Energy - Solar",
		},
		{
			name: "table order breaks equal-length tie",
			// "solar power" and "power plant" are both 11 chars;
			// the earlier table entry wins.
			text: "New solar power plant announced",
			want: "Renewable Energy - Solar",
		},
		{
			name: "case insensitive",
			text: "METRO PHASE 2 APPROVED",
			want: "Transportation - Metro",
		},
		{
			name: "single generic keyword",
			text: "Company receives large order",
			want: "Order/Contract",
		},
		{
			name: "compound keyword",
			text: "New data center campus in Hyderabad",
			want: "Data Center",
		},
		{
			name: "water supply beats pipeline length",
			text: "Water treatment and sewage works",
			want: "Water Infrastructure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.text)
			if got != tt.want {
				t.Errorf("Match(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestMatchDefault(t *testing.T) {
	m := NewMatcher()

	got := m.Match("Shareholders approve name change")
	if got != model.DefaultProjectType {
		t.Errorf("Match() = %q, want default %q", got, model.DefaultProjectType)
	}

	got = m.Match("")
	if got != model.DefaultProjectType {
		t.Errorf("Match(empty) = %q, want default %q", got, model.DefaultProjectType)
	}
}

func TestMatchDeterministic(t *testing.T) {
	m := NewMatcher()
	text := "EPC contract for highway and bridge works"

	first := m.Match(text)
	for i := 0; i < 10; i++ {
		if got := m.Match(text); got != first {
			t.Fatalf("Match() unstable: got %q then %q", first, got)
		}
	}
}

func TestMatchCustomTable(t *testing.T) {
	m := NewMatcherWithTable([]Entry{
		{"ship", "Marine"},
		{"shipyard", "Marine - Yard"},
	})

	if got := m.Match("new shipyard commissioned"); got != "Marine - Yard" {
		t.Errorf("Match() = %q, want %q", got, "Marine - Yard")
	}
	if got := m.Match("ship delivered"); got != "Marine" {
		t.Errorf("Match() = %q, want %q", got, "Marine")
	}
}
