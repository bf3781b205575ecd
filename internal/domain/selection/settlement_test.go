package selection

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestComputeProfitPerOutcome(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		stake  *float64
		odds   float64
		result Result
		want   *float64
	}{
		{name: "win", stake: floatPtr(100), odds: 2.5, result: ResultWin, want: floatPtr(150)},
		{name: "half win", stake: floatPtr(100), odds: 2.5, result: ResultHalfWin, want: floatPtr(75)},
		{name: "lose", stake: floatPtr(100), odds: 2.5, result: ResultLose, want: floatPtr(-100)},
		{name: "half lose", stake: floatPtr(100), odds: 2.5, result: ResultHalfLose, want: floatPtr(-50)},
		{name: "void", stake: floatPtr(100), odds: 2.5, result: ResultVoid, want: floatPtr(0)},
		{name: "pending is undetermined", stake: floatPtr(100), odds: 2.5, result: ResultPending, want: nil},
		{name: "missing stake", stake: nil, odds: 2.5, result: ResultWin, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ComputeProfit(tc.stake, tc.odds, tc.result)
			switch {
			case tc.want == nil && got != nil:
				t.Fatalf("ComputeProfit = %v, want nil", *got)
			case tc.want != nil && got == nil:
				t.Fatalf("ComputeProfit = nil, want %v", *tc.want)
			case tc.want != nil && *got != *tc.want:
				t.Fatalf("ComputeProfit = %v, want %v", *got, *tc.want)
			}
		})
	}
}

func TestSummarizeAggregates(t *testing.T) {
	t.Parallel()

	selections := []Selection{
		{Stake: floatPtr(100), Odds: 2, Result: ResultWin},
		{Stake: floatPtr(50), Odds: 3, Result: ResultLose},
		{Stake: floatPtr(20), Odds: 2, Result: ResultPending},
	}

	stats := Summarize(selections)

	if stats.TotalStaked != 170 {
		t.Fatalf("TotalStaked = %v, want 170", stats.TotalStaked)
	}
	if stats.TotalProfit != 50 {
		t.Fatalf("TotalProfit = %v, want 50", stats.TotalProfit)
	}
	if stats.Wins != 1 || stats.Losses != 1 || stats.Pending != 1 {
		t.Fatalf("counters = %d/%d/%d, want 1/1/1", stats.Wins, stats.Losses, stats.Pending)
	}
	if stats.WinRate != 50 {
		t.Fatalf("WinRate = %v, want 50", stats.WinRate)
	}
	if math.Abs(stats.ROI-50.0/170.0*100) > 1e-9 {
		t.Fatalf("ROI = %v, want %v", stats.ROI, 50.0/170.0*100)
	}
}

func TestSummarizeHalfOutcomesAndVoid(t *testing.T) {
	t.Parallel()

	selections := []Selection{
		{Stake: floatPtr(100), Odds: 2, Result: ResultHalfWin},
		{Stake: floatPtr(100), Odds: 2, Result: ResultHalfLose},
		{Stake: floatPtr(100), Odds: 2, Result: ResultVoid},
	}

	stats := Summarize(selections)

	if stats.Wins != 1 || stats.Losses != 1 {
		t.Fatalf("half outcomes should count toward the rate, got %d/%d", stats.Wins, stats.Losses)
	}
	if stats.Pending != 0 {
		t.Fatalf("void must not count as pending, got %d", stats.Pending)
	}
	if stats.TotalProfit != 0 {
		t.Fatalf("TotalProfit = %v, want 0 (half win cancels half lose, void adds nothing)", stats.TotalProfit)
	}
	if stats.WinRate != 50 {
		t.Fatalf("WinRate = %v, want 50", stats.WinRate)
	}
}

func TestSummarizeZeroSafe(t *testing.T) {
	t.Parallel()

	stats := Summarize(nil)
	if stats.WinRate != 0 || stats.ROI != 0 || stats.TotalStaked != 0 {
		t.Fatalf("empty summary must be all zeroes, got %+v", stats)
	}
}
