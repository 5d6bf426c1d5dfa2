package pool

import "testing"

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestPeriods_ByQuarterSortsAscending(t *testing.T) {
	s := Structure{Type: Type{Kind: TypeByQuarter, Quarters: []int{4, 1, 3, 2}}}
	periods := s.Periods()
	if len(periods) != 4 {
		t.Fatalf("expected 4 periods, got %d", len(periods))
	}
	for i, p := range periods {
		if p.Kind != PeriodQuarter || p.Quarter != i+1 {
			t.Fatalf("period %d: got %+v", i, p)
		}
	}
	if periods[0].ID() != "q1" || periods[0].Label() != "1st Quarter" {
		t.Fatalf("unexpected id/label: %s / %s", periods[0].ID(), periods[0].Label())
	}
}

func TestPeriods_PerScoreChangeExpansion(t *testing.T) {
	uncapped := Structure{Type: Type{Kind: TypePerScoreChange}}
	periods := uncapped.Periods()
	if len(periods) != 26 {
		t.Fatalf("uncapped should default to 25 score changes plus final, got %d", len(periods))
	}
	if periods[0].ID() != "score-change-1" || periods[24].ID() != "score-change-25" {
		t.Fatalf("unexpected score change ids: %s .. %s", periods[0].ID(), periods[24].ID())
	}
	if periods[25].Kind != PeriodFinal {
		t.Fatalf("expected trailing final period, got %+v", periods[25])
	}

	capped := Structure{Type: Type{Kind: TypePerScoreChange, MaxScoreChanges: intPtr(3)}}
	if got := len(capped.Periods()); got != 4 {
		t.Fatalf("capped at 3 should yield 4 periods, got %d", got)
	}
}

func TestPeriods_OtherKinds(t *testing.T) {
	if p := (Structure{Type: Type{Kind: TypeHalftimeAndFinal}}).Periods(); len(p) != 2 || p[0].Kind != PeriodHalftime || p[1].Kind != PeriodFinal {
		t.Fatalf("halftime-and-final: got %+v", p)
	}
	custom := Structure{Type: Type{Kind: TypeCustomPeriods, Custom: []CustomPeriod{{ID: "inning-3", Label: "3rd Inning"}}}}
	p := custom.Periods()
	if len(p) != 1 || p[0].ID() != "custom:inning-3" || p[0].Label() != "3rd Inning" {
		t.Fatalf("custom periods: got %+v", p)
	}
}

func TestAmountForPeriod_EqualSplit(t *testing.T) {
	s := Structure{
		Type:         Type{Kind: TypeByQuarter, Quarters: []int{1, 2, 3, 4}},
		Payout:       Payout{Kind: PayoutEqualSplit},
		TotalAmount:  floatPtr(100),
		CurrencyCode: "USD",
	}
	for i := 0; i < 4; i++ {
		amount, ok := s.AmountForPeriod(i)
		if !ok || amount != 25 {
			t.Fatalf("period %d: got %v ok=%v, want 25", i, amount, ok)
		}
	}
	if _, ok := s.AmountForPeriod(4); ok {
		t.Fatalf("out-of-range index must be unresolvable")
	}
}

func TestAmountForPeriod_StylesAndDegradation(t *testing.T) {
	fixed := Structure{
		Type:   Type{Kind: TypeByQuarter, Quarters: []int{1, 2}},
		Payout: Payout{Kind: PayoutFixedAmounts, Amounts: []float64{40}},
	}
	if amount, ok := fixed.AmountForPeriod(0); !ok || amount != 40 {
		t.Fatalf("fixed period 0: got %v ok=%v", amount, ok)
	}
	// Fewer amounts than periods pads with zero, not an error.
	if amount, ok := fixed.AmountForPeriod(1); !ok || amount != 0 {
		t.Fatalf("padded period: got %v ok=%v", amount, ok)
	}

	pct := Structure{
		Type:        Type{Kind: TypeHalftimeAndFinal},
		Payout:      Payout{Kind: PayoutPercentages, Percentages: []float64{30, 70}},
		TotalAmount: floatPtr(200),
	}
	if amount, ok := pct.AmountForPeriod(1); !ok || amount != 140 {
		t.Fatalf("percentage period: got %v ok=%v", amount, ok)
	}
	pct.TotalAmount = nil
	if _, ok := pct.AmountForPeriod(1); ok {
		t.Fatalf("percentage without total must be unresolvable")
	}

	custom := Structure{
		Type:   Type{Kind: TypeFinalOnly},
		Payout: Payout{Kind: PayoutCustom, Descriptions: []string{"Winner buys wings"}},
	}
	if _, ok := custom.AmountForPeriod(0); ok {
		t.Fatalf("custom text payouts are never resolvable to an amount")
	}
}

func TestPayoutDescriptions(t *testing.T) {
	s := Structure{
		Type:         Type{Kind: TypeByQuarter, Quarters: []int{1, 2, 3}},
		Payout:       Payout{Kind: PayoutFixedAmounts, Amounts: []float64{25, 25.5}},
		CurrencyCode: "USD",
	}
	got := s.PayoutDescriptions()
	if len(got) != 3 {
		t.Fatalf("expected one description per period, got %d", len(got))
	}
	if got[0] != "$25" || got[1] != "$25.50" || got[2] != "$0" {
		t.Fatalf("unexpected descriptions: %v", got)
	}

	custom := Structure{
		Type:   Type{Kind: TypeHalftimeAndFinal},
		Payout: Payout{Kind: PayoutCustom, Descriptions: []string{"Halftime prize"}},
	}
	got = custom.PayoutDescriptions()
	if got[0] != "Halftime prize" || got[1] != "" {
		t.Fatalf("custom descriptions should pad blanks: %v", got)
	}
}

func TestFormatCurrency_Fallback(t *testing.T) {
	s := Structure{CurrencyCode: "XCOIN"}
	if got := s.formatCurrency(25.75); got != "$25" {
		t.Fatalf("unknown currency should fall back to plain integer, got %q", got)
	}
	gbp := Structure{CurrencyCode: "GBP"}
	if got := gbp.formatCurrency(10); got != "£10" {
		t.Fatalf("gbp rendering: got %q", got)
	}
	none := Structure{}
	if got := none.formatCurrency(5); got != "$5" {
		t.Fatalf("empty currency defaults to dollars, got %q", got)
	}
}

func TestSummary(t *testing.T) {
	s := Structure{
		Type:         Type{Kind: TypeByQuarter, Quarters: []int{1, 2, 3, 4}},
		Payout:       Payout{Kind: PayoutEqualSplit},
		TotalAmount:  floatPtr(100),
		CurrencyCode: "USD",
	}
	got := s.Summary()
	if got != "Pays out at the end of 4 quarter(s). $100 pot split equally: $25 per period." {
		t.Fatalf("unexpected summary: %q", got)
	}

	if got := DefaultStructure().Summary(); got != "Pays out at the end of 4 quarter(s). Pot split equally across periods." {
		t.Fatalf("default summary: %q", got)
	}
}
