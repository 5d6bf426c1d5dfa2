// Package pool models how a squares pool pays out: which periods can win and
// how the pot is split across them.
package pool

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TypeKind enumerates the closed set of pool types.
type TypeKind string

const (
	TypeByQuarter        TypeKind = "BY_QUARTER"
	TypeHalftimeOnly     TypeKind = "HALFTIME_ONLY"
	TypeFinalOnly        TypeKind = "FINAL_ONLY"
	TypeFirstScoreChange TypeKind = "FIRST_SCORE_CHANGE"
	TypeHalftimeAndFinal TypeKind = "HALFTIME_AND_FINAL"
	TypeCustomPeriods    TypeKind = "CUSTOM_PERIODS"
	TypePerScoreChange   TypeKind = "PER_SCORE_CHANGE"
)

// defaultScoreChangeCount caps an uncapped per-score-change pool. NFL games
// rarely exceed two dozen scoring plays.
const defaultScoreChangeCount = 25

// CustomPeriod is one operator-defined payout moment ("3rd Inning", "MVP").
type CustomPeriod struct {
	ID    string
	Label string
}

// Type is the pool-type variant. Kind selects which payload fields apply.
type Type struct {
	Kind            TypeKind
	Quarters        []int          // TypeByQuarter
	Custom          []CustomPeriod // TypeCustomPeriods
	MaxScoreChanges *int           // TypePerScoreChange; nil means uncapped
}

// PayoutKind enumerates how the pot is split.
type PayoutKind string

const (
	PayoutFixedAmounts PayoutKind = "FIXED_AMOUNTS"
	PayoutPercentages  PayoutKind = "PERCENTAGES"
	PayoutEqualSplit   PayoutKind = "EQUAL_SPLIT"
	PayoutCustom       PayoutKind = "CUSTOM"
)

// Payout is the payout-style variant.
type Payout struct {
	Kind         PayoutKind
	Amounts      []float64 // PayoutFixedAmounts, one per period
	Percentages  []float64 // PayoutPercentages, one per period
	Descriptions []string  // PayoutCustom, one per period
}

// Structure is a pool's full payout configuration. Description and
// RulesSummary come from the rule-parser collaborator and are stored verbatim.
type Structure struct {
	Type         Type
	Payout       Payout
	TotalAmount  *float64
	CurrencyCode string
	Description  string
	RulesSummary string
}

// DefaultStructure is the legacy-compatible standard pool: one winner per
// quarter, pot split equally. Grids persisted before pool structures existed
// decode to this.
func DefaultStructure() Structure {
	return Structure{
		Type:         Type{Kind: TypeByQuarter, Quarters: []int{1, 2, 3, 4}},
		Payout:       Payout{Kind: PayoutEqualSplit},
		CurrencyCode: "USD",
	}
}

// PeriodKind enumerates the closed set of payout periods.
type PeriodKind string

const (
	PeriodQuarter          PeriodKind = "QUARTER"
	PeriodHalftime         PeriodKind = "HALFTIME"
	PeriodFinal            PeriodKind = "FINAL"
	PeriodFirstScoreChange PeriodKind = "FIRST_SCORE_CHANGE"
	PeriodCustom           PeriodKind = "CUSTOM"
	PeriodScoreChange      PeriodKind = "SCORE_CHANGE"
)

// Period is one scoring moment that can win a payout.
type Period struct {
	Kind        PeriodKind
	Quarter     int    // PeriodQuarter
	Sequence    int    // PeriodScoreChange, 1-based
	CustomID    string // PeriodCustom
	CustomLabel string // PeriodCustom
}

// ID is the stable identifier recorded on winning squares.
func (p Period) ID() string {
	switch p.Kind {
	case PeriodQuarter:
		return fmt.Sprintf("q%d", p.Quarter)
	case PeriodHalftime:
		return "halftime"
	case PeriodFinal:
		return "final"
	case PeriodFirstScoreChange:
		return "first-score-change"
	case PeriodCustom:
		return "custom:" + p.CustomID
	case PeriodScoreChange:
		return fmt.Sprintf("score-change-%d", p.Sequence)
	default:
		return ""
	}
}

// Label is the display name for the period.
func (p Period) Label() string {
	switch p.Kind {
	case PeriodQuarter:
		return quarterLabel(p.Quarter)
	case PeriodHalftime:
		return "Halftime"
	case PeriodFinal:
		return "Final Score"
	case PeriodFirstScoreChange:
		return "First Score Change"
	case PeriodCustom:
		return p.CustomLabel
	case PeriodScoreChange:
		return fmt.Sprintf("Score Change %d", p.Sequence)
	default:
		return ""
	}
}

func quarterLabel(n int) string {
	switch n {
	case 1:
		return "1st Quarter"
	case 2:
		return "2nd Quarter"
	case 3:
		return "3rd Quarter"
	default:
		return fmt.Sprintf("%dth Quarter", n)
	}
}

// Periods derives the ordered payout periods implied by the pool type.
// Quarters come out ascending; a per-score-change pool expands to its capped
// count of numbered periods plus a trailing final.
func (s Structure) Periods() []Period {
	switch s.Type.Kind {
	case TypeByQuarter:
		quarters := append([]int(nil), s.Type.Quarters...)
		sort.Ints(quarters)
		out := make([]Period, 0, len(quarters))
		for _, q := range quarters {
			out = append(out, Period{Kind: PeriodQuarter, Quarter: q})
		}
		return out
	case TypeHalftimeOnly:
		return []Period{{Kind: PeriodHalftime}}
	case TypeFinalOnly:
		return []Period{{Kind: PeriodFinal}}
	case TypeFirstScoreChange:
		return []Period{{Kind: PeriodFirstScoreChange}}
	case TypeHalftimeAndFinal:
		return []Period{{Kind: PeriodHalftime}, {Kind: PeriodFinal}}
	case TypeCustomPeriods:
		out := make([]Period, 0, len(s.Type.Custom))
		for _, c := range s.Type.Custom {
			out = append(out, Period{Kind: PeriodCustom, CustomID: c.ID, CustomLabel: c.Label})
		}
		return out
	case TypePerScoreChange:
		count := defaultScoreChangeCount
		if s.Type.MaxScoreChanges != nil && *s.Type.MaxScoreChanges > 0 {
			count = *s.Type.MaxScoreChanges
		}
		out := make([]Period, 0, count+1)
		for i := 1; i <= count; i++ {
			out = append(out, Period{Kind: PeriodScoreChange, Sequence: i})
		}
		return append(out, Period{Kind: PeriodFinal})
	default:
		return nil
	}
}

// PeriodLabels returns the display labels for every derived period.
func (s Structure) PeriodLabels() []string {
	periods := s.Periods()
	out := make([]string, 0, len(periods))
	for _, p := range periods {
		out = append(out, p.Label())
	}
	return out
}

// PayoutDescriptions renders one payout description per period. A malformed
// configuration with fewer entries than periods pads with zero amounts or
// blanks instead of failing: a bad sheet should render, not crash the pool.
func (s Structure) PayoutDescriptions() []string {
	periods := s.Periods()
	out := make([]string, 0, len(periods))

	for i := range periods {
		switch s.Payout.Kind {
		case PayoutFixedAmounts:
			amount := 0.0
			if i < len(s.Payout.Amounts) {
				amount = s.Payout.Amounts[i]
			}
			out = append(out, s.formatCurrency(amount))
		case PayoutPercentages:
			pct := 0.0
			if i < len(s.Payout.Percentages) {
				pct = s.Payout.Percentages[i]
			}
			out = append(out, formatNumber(pct)+"%")
		case PayoutEqualSplit:
			if amount, ok := s.AmountForPeriod(i); ok {
				out = append(out, s.formatCurrency(amount))
			} else {
				out = append(out, "Equal split")
			}
		case PayoutCustom:
			description := ""
			if i < len(s.Payout.Descriptions) {
				description = s.Payout.Descriptions[i]
			}
			out = append(out, description)
		default:
			out = append(out, "")
		}
	}

	return out
}

// AmountForPeriod resolves a concrete payout for one period index. It returns
// false when the amount cannot be determined (custom text styles, missing
// total, index out of range) rather than guessing.
func (s Structure) AmountForPeriod(index int) (float64, bool) {
	periods := s.Periods()
	if index < 0 || index >= len(periods) {
		return 0, false
	}

	switch s.Payout.Kind {
	case PayoutFixedAmounts:
		if index < len(s.Payout.Amounts) {
			return s.Payout.Amounts[index], true
		}
		return 0, true
	case PayoutPercentages:
		if s.TotalAmount == nil {
			return 0, false
		}
		pct := 0.0
		if index < len(s.Payout.Percentages) {
			pct = s.Payout.Percentages[index]
		}
		return *s.TotalAmount * pct / 100, true
	case PayoutEqualSplit:
		if s.TotalAmount == nil {
			return 0, false
		}
		return *s.TotalAmount / float64(len(periods)), true
	default:
		return 0, false
	}
}

// Summary renders the structure as display prose, branching on pool type and
// payout style.
func (s Structure) Summary() string {
	var b strings.Builder

	switch s.Type.Kind {
	case TypeByQuarter:
		b.WriteString(fmt.Sprintf("Pays out at the end of %d quarter(s)", len(s.Periods())))
	case TypeHalftimeOnly:
		b.WriteString("Single payout at halftime")
	case TypeFinalOnly:
		b.WriteString("Single payout on the final score")
	case TypeFirstScoreChange:
		b.WriteString("Single payout on the first score change")
	case TypeHalftimeAndFinal:
		b.WriteString("Pays out at halftime and on the final score")
	case TypeCustomPeriods:
		b.WriteString(fmt.Sprintf("Pays out on %d custom period(s)", len(s.Type.Custom)))
	case TypePerScoreChange:
		count := len(s.Periods()) - 1
		if s.Type.MaxScoreChanges != nil {
			b.WriteString(fmt.Sprintf("Pays out on every score change, capped at %d, plus the final score", count))
		} else {
			b.WriteString("Pays out on every score change plus the final score")
		}
	default:
		b.WriteString("Custom pool")
	}

	switch s.Payout.Kind {
	case PayoutFixedAmounts:
		b.WriteString(". Fixed payout per period")
		if total := s.fixedTotal(); total > 0 {
			b.WriteString(fmt.Sprintf(" (%s total)", s.formatCurrency(total)))
		}
		b.WriteString(".")
	case PayoutPercentages:
		b.WriteString(". Pot split by percentage per period.")
	case PayoutEqualSplit:
		if s.TotalAmount != nil {
			if amount, ok := s.AmountForPeriod(0); ok {
				b.WriteString(fmt.Sprintf(". %s pot split equally: %s per period.", s.formatCurrency(*s.TotalAmount), s.formatCurrency(amount)))
				break
			}
		}
		b.WriteString(". Pot split equally across periods.")
	case PayoutCustom:
		b.WriteString(". Custom payout per period.")
	}

	return b.String()
}

func (s Structure) fixedTotal() float64 {
	total := 0.0
	for _, a := range s.Payout.Amounts {
		total += a
	}
	return total
}

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"AUD": "$",
	"EUR": "€",
	"GBP": "£",
}

// formatCurrency renders whole amounts without decimals ($25, not $25.00).
// Unknown currency codes fall back to a plain dollar-integer rendering.
func (s Structure) formatCurrency(amount float64) string {
	symbol, ok := currencySymbols[strings.ToUpper(strings.TrimSpace(s.CurrencyCode))]
	if !ok && strings.TrimSpace(s.CurrencyCode) != "" {
		return "$" + strconv.Itoa(int(amount))
	}
	if symbol == "" {
		symbol = "$"
	}
	return symbol + formatNumber(amount)
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
