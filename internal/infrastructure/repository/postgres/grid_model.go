package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/boxpool/boxpool/internal/domain/game"
	"github.com/boxpool/boxpool/internal/domain/grid"
	"github.com/boxpool/boxpool/internal/domain/pool"
	"github.com/boxpool/boxpool/internal/domain/team"
)

type gridTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	Name         string         `db:"name"`
	HomeTeam     string         `db:"home_team"`
	AwayTeam     string         `db:"away_team"`
	HomeNumbers  pq.Int64Array  `db:"home_numbers"`
	AwayNumbers  pq.Int64Array  `db:"away_numbers"`
	Squares      string         `db:"squares"`
	Pool         sql.NullString `db:"pool"`
	OwnerLabels  pq.StringArray `db:"owner_labels"`
	SharedCode   sql.NullString `db:"shared_code"`
	CurrentScore sql.NullString `db:"current_score"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type gridUpsertModel struct {
	PublicID     string         `db:"public_id"`
	Name         string         `db:"name"`
	HomeTeam     string         `db:"home_team"`
	AwayTeam     string         `db:"away_team"`
	HomeNumbers  pq.Int64Array  `db:"home_numbers"`
	AwayNumbers  pq.Int64Array  `db:"away_numbers"`
	Squares      string         `db:"squares"`
	Pool         sql.NullString `db:"pool"`
	OwnerLabels  pq.StringArray `db:"owner_labels"`
	SharedCode   sql.NullString `db:"shared_code"`
	CurrentScore sql.NullString `db:"current_score"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// Storage documents for the jsonb columns. They mirror the domain types with
// explicit keys so the persisted shape stays stable if domain fields move.

type teamDoc struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Abbreviation   string `json:"abbreviation"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
}

type squareDoc struct {
	ID          string   `json:"id"`
	PlayerName  string   `json:"player_name,omitempty"`
	Row         int      `json:"row"`
	Col         int      `json:"col"`
	IsWinner    bool     `json:"is_winner,omitempty"`
	QuartersWon []int    `json:"quarters_won,omitempty"`
	PeriodsWon  []string `json:"periods_won,omitempty"`
}

type customPeriodDoc struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type poolDoc struct {
	TypeKind        string            `json:"type_kind"`
	Quarters        []int             `json:"quarters,omitempty"`
	Custom          []customPeriodDoc `json:"custom,omitempty"`
	MaxScoreChanges *int              `json:"max_score_changes,omitempty"`
	PayoutKind      string            `json:"payout_kind"`
	Amounts         []float64         `json:"amounts,omitempty"`
	Percentages     []float64         `json:"percentages,omitempty"`
	Descriptions    []string          `json:"descriptions,omitempty"`
	TotalAmount     *float64          `json:"total_amount,omitempty"`
	CurrencyCode    string            `json:"currency_code,omitempty"`
	Description     string            `json:"description,omitempty"`
	RulesSummary    string            `json:"rules_summary,omitempty"`
}

type quarterLineDoc struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type scoreDoc struct {
	HomeTeam  teamDoc                `json:"home_team"`
	AwayTeam  teamDoc                `json:"away_team"`
	HomeScore int                    `json:"home_score"`
	AwayScore int                    `json:"away_score"`
	Quarter   int                    `json:"quarter"`
	Clock     string                 `json:"clock,omitempty"`
	IsActive  bool                   `json:"is_active"`
	IsOver    bool                   `json:"is_over"`
	Quarters  map[int]quarterLineDoc `json:"quarters,omitempty"`
}

func teamToDoc(t team.Team) teamDoc {
	return teamDoc{
		ID:             t.ID,
		Name:           t.Name,
		Abbreviation:   t.Abbreviation,
		PrimaryColor:   t.PrimaryColor,
		SecondaryColor: t.SecondaryColor,
		LogoURL:        t.LogoURL,
	}
}

func docToTeam(d teamDoc) team.Team {
	return team.Team{
		ID:             d.ID,
		Name:           d.Name,
		Abbreviation:   d.Abbreviation,
		PrimaryColor:   d.PrimaryColor,
		SecondaryColor: d.SecondaryColor,
		LogoURL:        d.LogoURL,
	}
}

func squaresToDocs(squares [][]grid.Square) [][]squareDoc {
	out := make([][]squareDoc, len(squares))
	for row := range squares {
		out[row] = make([]squareDoc, len(squares[row]))
		for col, sq := range squares[row] {
			out[row][col] = squareDoc{
				ID:          sq.ID,
				PlayerName:  sq.PlayerName,
				Row:         sq.Row,
				Col:         sq.Col,
				IsWinner:    sq.IsWinner,
				QuartersWon: sq.QuartersWon,
				PeriodsWon:  sq.PeriodsWon,
			}
		}
	}
	return out
}

func docsToSquares(docs [][]squareDoc) [][]grid.Square {
	out := make([][]grid.Square, len(docs))
	for row := range docs {
		out[row] = make([]grid.Square, len(docs[row]))
		for col, d := range docs[row] {
			out[row][col] = grid.Square{
				ID:          d.ID,
				PlayerName:  d.PlayerName,
				Row:         d.Row,
				Col:         d.Col,
				IsWinner:    d.IsWinner,
				QuartersWon: d.QuartersWon,
				PeriodsWon:  d.PeriodsWon,
			}
		}
	}
	return out
}

func poolToDoc(s pool.Structure) poolDoc {
	custom := make([]customPeriodDoc, 0, len(s.Type.Custom))
	for _, c := range s.Type.Custom {
		custom = append(custom, customPeriodDoc{ID: c.ID, Label: c.Label})
	}

	return poolDoc{
		TypeKind:        string(s.Type.Kind),
		Quarters:        s.Type.Quarters,
		Custom:          custom,
		MaxScoreChanges: s.Type.MaxScoreChanges,
		PayoutKind:      string(s.Payout.Kind),
		Amounts:         s.Payout.Amounts,
		Percentages:     s.Payout.Percentages,
		Descriptions:    s.Payout.Descriptions,
		TotalAmount:     s.TotalAmount,
		CurrencyCode:    s.CurrencyCode,
		Description:     s.Description,
		RulesSummary:    s.RulesSummary,
	}
}

func docToPool(d poolDoc) pool.Structure {
	custom := make([]pool.CustomPeriod, 0, len(d.Custom))
	for _, c := range d.Custom {
		custom = append(custom, pool.CustomPeriod{ID: c.ID, Label: c.Label})
	}

	return pool.Structure{
		Type: pool.Type{
			Kind:            pool.TypeKind(d.TypeKind),
			Quarters:        d.Quarters,
			Custom:          custom,
			MaxScoreChanges: d.MaxScoreChanges,
		},
		Payout: pool.Payout{
			Kind:         pool.PayoutKind(d.PayoutKind),
			Amounts:      d.Amounts,
			Percentages:  d.Percentages,
			Descriptions: d.Descriptions,
		},
		TotalAmount:  d.TotalAmount,
		CurrencyCode: d.CurrencyCode,
		Description:  d.Description,
		RulesSummary: d.RulesSummary,
	}
}

func scoreToDoc(s game.Score) scoreDoc {
	var quarters map[int]quarterLineDoc
	if len(s.Quarters) > 0 {
		quarters = make(map[int]quarterLineDoc, len(s.Quarters))
		for n, line := range s.Quarters {
			quarters[n] = quarterLineDoc{Home: line.Home, Away: line.Away}
		}
	}

	return scoreDoc{
		HomeTeam:  teamToDoc(s.HomeTeam),
		AwayTeam:  teamToDoc(s.AwayTeam),
		HomeScore: s.HomeScore,
		AwayScore: s.AwayScore,
		Quarter:   s.Quarter,
		Clock:     s.Clock,
		IsActive:  s.IsActive,
		IsOver:    s.IsOver,
		Quarters:  quarters,
	}
}

func docToScore(d scoreDoc) game.Score {
	var quarters game.QuarterScores
	if len(d.Quarters) > 0 {
		quarters = make(game.QuarterScores, len(d.Quarters))
		for n, line := range d.Quarters {
			quarters[n] = game.QuarterLine{Home: line.Home, Away: line.Away}
		}
	}

	return game.Score{
		HomeTeam:  docToTeam(d.HomeTeam),
		AwayTeam:  docToTeam(d.AwayTeam),
		HomeScore: d.HomeScore,
		AwayScore: d.AwayScore,
		Quarter:   d.Quarter,
		Clock:     d.Clock,
		IsActive:  d.IsActive,
		IsOver:    d.IsOver,
		Quarters:  quarters,
	}
}

func intsToArray(values []int) pq.Int64Array {
	out := make(pq.Int64Array, len(values))
	for i, v := range values {
		out[i] = int64(v)
	}
	return out
}

func arrayToInts(values pq.Int64Array) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}
	return out
}
