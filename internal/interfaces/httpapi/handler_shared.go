package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/boxpool/boxpool/internal/domain/game"
	"github.com/boxpool/boxpool/internal/domain/grid"
	"github.com/boxpool/boxpool/internal/domain/pool"
	"github.com/boxpool/boxpool/internal/domain/team"
	"github.com/boxpool/boxpool/internal/platform/logging"
	"github.com/boxpool/boxpool/internal/usecase"
)

type Handler struct {
	teamService    *usecase.TeamService
	gridService    *usecase.GridService
	scoreService   *usecase.ScoreService
	scanService    *usecase.ScanService
	insightService *usecase.InsightService
	refreshService *usecase.RefreshService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	gridService *usecase.GridService,
	scoreService *usecase.ScoreService,
	scanService *usecase.ScanService,
	insightService *usecase.InsightService,
	refreshService *usecase.RefreshService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:    teamService,
		gridService:    gridService,
		scoreService:   scoreService,
		scanService:    scanService,
		insightService: insightService,
		refreshService: refreshService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type createGridRequest struct {
	Name       string                `json:"name" validate:"required,max=120"`
	HomeTeamID string                `json:"home_team_id" validate:"required"`
	AwayTeamID string                `json:"away_team_id" validate:"required"`
	Pool       *poolStructureRequest `json:"pool,omitempty" validate:"omitempty"`
}

type poolStructureRequest struct {
	Type            string                `json:"type" validate:"required,oneof=BY_QUARTER HALFTIME_ONLY FINAL_ONLY FIRST_SCORE_CHANGE HALFTIME_AND_FINAL CUSTOM_PERIODS PER_SCORE_CHANGE"`
	Quarters        []int                 `json:"quarters" validate:"omitempty,max=4,dive,gte=1,lte=4"`
	CustomPeriods   []customPeriodRecord  `json:"custom_periods" validate:"omitempty,max=50,dive"`
	MaxScoreChanges *int                  `json:"max_score_changes" validate:"omitempty,gt=0,lte=100"`
	Payout          string                `json:"payout" validate:"required,oneof=FIXED_AMOUNTS PERCENTAGES EQUAL_SPLIT CUSTOM"`
	Amounts         []float64             `json:"amounts" validate:"omitempty,dive,gte=0"`
	Percentages     []float64             `json:"percentages" validate:"omitempty,dive,gte=0,lte=100"`
	Descriptions    []string              `json:"descriptions" validate:"omitempty,dive,max=200"`
	TotalAmount     *float64              `json:"total_amount" validate:"omitempty,gt=0"`
	CurrencyCode    string                `json:"currency_code" validate:"omitempty,len=3,alpha"`
	Description     string                `json:"description" validate:"max=500"`
	RulesSummary    string                `json:"rules_summary" validate:"max=2000"`
}

type customPeriodRecord struct {
	ID    string `json:"id" validate:"required,max=40"`
	Label string `json:"label" validate:"required,max=80"`
}

type claimSquareRequest struct {
	PlayerName string `json:"player_name" validate:"max=80"`
}

type ownerLabelsRequest struct {
	Labels []string `json:"labels" validate:"max=25,dive,max=80"`
}

type applyScoreRequest struct {
	HomeScore int                       `json:"home_score" validate:"gte=0"`
	AwayScore int                       `json:"away_score" validate:"gte=0"`
	Quarter   int                       `json:"quarter" validate:"gte=0"`
	Clock     string                    `json:"clock" validate:"max=16"`
	IsActive  bool                      `json:"is_active"`
	IsOver    bool                      `json:"is_over"`
	Quarters  map[int]quarterLineRecord `json:"quarters" validate:"omitempty,dive"`
}

type quarterLineRecord struct {
	Home int `json:"home" validate:"gte=0"`
	Away int `json:"away" validate:"gte=0"`
}

type applyScanRequest struct {
	Cells     []scanCellRecord `json:"cells" validate:"required,min=1,max=200,dive"`
	Overwrite bool             `json:"overwrite"`
	HomeText  string           `json:"home_text" validate:"max=120"`
	AwayText  string           `json:"away_text" validate:"max=120"`
}

// scanCellRecord carries row and col unchecked: recognition output is noisy
// and out-of-range cells are tallied as rejected rather than failing the scan.
type scanCellRecord struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Text string `json:"text" validate:"max=120"`
}

type resolveTeamsRequest struct {
	HomeText string `json:"home_text" validate:"required,max=120"`
	AwayText string `json:"away_text" validate:"required,max=120"`
}

type runRefreshJobRequest struct {
	MaxWorkers int `json:"max_workers" validate:"gte=0,lte=16"`
}

type teamDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Abbreviation string   `json:"abbreviation"`
	TeamColor    []string `json:"team_color,omitempty"`
	LogoURL      string   `json:"logo_url,omitempty"`
}

type squareDTO struct {
	ID          string   `json:"id"`
	Row         int      `json:"row"`
	Col         int      `json:"col"`
	PlayerName  string   `json:"player_name,omitempty"`
	IsWinner    bool     `json:"is_winner"`
	QuartersWon []int    `json:"quarters_won,omitempty"`
	PeriodsWon  []string `json:"periods_won,omitempty"`
}

type quarterLineDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type scoreDTO struct {
	HomeTeam  teamDTO                `json:"home_team"`
	AwayTeam  teamDTO                `json:"away_team"`
	HomeScore int                    `json:"home_score"`
	AwayScore int                    `json:"away_score"`
	Quarter   int                    `json:"quarter"`
	Clock     string                 `json:"clock,omitempty"`
	IsActive  bool                   `json:"is_active"`
	IsOver    bool                   `json:"is_over"`
	Quarters  map[int]quarterLineDTO `json:"quarters,omitempty"`
}

type poolDTO struct {
	Type            string            `json:"type"`
	Quarters        []int             `json:"quarters,omitempty"`
	CustomPeriods   []customPeriodDTO `json:"custom_periods,omitempty"`
	MaxScoreChanges *int              `json:"max_score_changes,omitempty"`
	Payout          string            `json:"payout"`
	Amounts         []float64         `json:"amounts,omitempty"`
	Percentages     []float64         `json:"percentages,omitempty"`
	Descriptions    []string          `json:"descriptions,omitempty"`
	TotalAmount     *float64          `json:"total_amount,omitempty"`
	CurrencyCode    string            `json:"currency_code,omitempty"`
	Description     string            `json:"description,omitempty"`
	RulesSummary    string            `json:"rules_summary,omitempty"`
	Summary         string            `json:"summary"`
}

type customPeriodDTO struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type gridSummaryDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	HomeTeam     teamDTO `json:"home_team"`
	AwayTeam     teamDTO `json:"away_team"`
	FilledCount  int     `json:"filled_count"`
	IsComplete   bool    `json:"is_complete"`
	SharedCode   string  `json:"shared_code,omitempty"`
	CreatedAtUTC string  `json:"created_at_utc"`
}

type gridDTO struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	HomeTeam        teamDTO       `json:"home_team"`
	AwayTeam        teamDTO       `json:"away_team"`
	HomeNumbers     []int         `json:"home_numbers"`
	AwayNumbers     []int         `json:"away_numbers"`
	Squares         [][]squareDTO `json:"squares"`
	Pool            poolDTO       `json:"pool"`
	OwnerLabels     []string      `json:"owner_labels,omitempty"`
	SharedCode      string        `json:"shared_code,omitempty"`
	CurrentScore    *scoreDTO     `json:"current_score,omitempty"`
	FilledCount     int           `json:"filled_count"`
	IsComplete      bool          `json:"is_complete"`
	CreatedAtUTC    string        `json:"created_at_utc"`
	LastModifiedUTC string        `json:"last_modified_utc"`
}

type scanResultDTO struct {
	Grid     gridDTO `json:"grid"`
	Applied  int     `json:"applied"`
	Skipped  int     `json:"skipped"`
	Rejected int     `json:"rejected"`
}

type resolvedTeamsDTO struct {
	HomeTeam teamDTO `json:"home_team"`
	AwayTeam teamDTO `json:"away_team"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:           v.ID,
		Name:         v.Name,
		Abbreviation: v.Abbreviation,
		TeamColor:    teamColorArray(v.PrimaryColor, v.SecondaryColor),
		LogoURL:      v.LogoURL,
	}
}

func teamColorArray(primary, secondary string) []string {
	if primary == "" || secondary == "" {
		return nil
	}
	return []string{primary, secondary}
}

func squareToDTO(v grid.Square) squareDTO {
	return squareDTO{
		ID:          v.ID,
		Row:         v.Row,
		Col:         v.Col,
		PlayerName:  v.PlayerName,
		IsWinner:    v.IsWinner,
		QuartersWon: append([]int(nil), v.QuartersWon...),
		PeriodsWon:  append([]string(nil), v.PeriodsWon...),
	}
}

func scoreToDTO(v game.Score) scoreDTO {
	dto := scoreDTO{
		HomeTeam:  teamToDTO(v.HomeTeam),
		AwayTeam:  teamToDTO(v.AwayTeam),
		HomeScore: v.HomeScore,
		AwayScore: v.AwayScore,
		Quarter:   v.Quarter,
		Clock:     v.Clock,
		IsActive:  v.IsActive,
		IsOver:    v.IsOver,
	}
	if len(v.Quarters) > 0 {
		dto.Quarters = make(map[int]quarterLineDTO, len(v.Quarters))
		for n, line := range v.Quarters {
			dto.Quarters[n] = quarterLineDTO{Home: line.Home, Away: line.Away}
		}
	}
	return dto
}

func poolToDTO(s pool.Structure) poolDTO {
	dto := poolDTO{
		Type:            string(s.Type.Kind),
		Quarters:        append([]int(nil), s.Type.Quarters...),
		MaxScoreChanges: s.Type.MaxScoreChanges,
		Payout:          string(s.Payout.Kind),
		Amounts:         append([]float64(nil), s.Payout.Amounts...),
		Percentages:     append([]float64(nil), s.Payout.Percentages...),
		Descriptions:    append([]string(nil), s.Payout.Descriptions...),
		TotalAmount:     s.TotalAmount,
		CurrencyCode:    s.CurrencyCode,
		Description:     s.Description,
		RulesSummary:    s.RulesSummary,
		Summary:         s.Summary(),
	}
	for _, c := range s.Type.Custom {
		dto.CustomPeriods = append(dto.CustomPeriods, customPeriodDTO{ID: c.ID, Label: c.Label})
	}
	return dto
}

func gridToSummaryDTO(v grid.Grid) gridSummaryDTO {
	return gridSummaryDTO{
		ID:           v.ID,
		Name:         v.Name,
		HomeTeam:     teamToDTO(v.HomeTeam),
		AwayTeam:     teamToDTO(v.AwayTeam),
		FilledCount:  v.FilledCount(),
		IsComplete:   v.IsComplete(),
		SharedCode:   v.SharedCode,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func gridToDTO(v grid.Grid) gridDTO {
	squares := make([][]squareDTO, len(v.Squares))
	for row := range v.Squares {
		squares[row] = make([]squareDTO, len(v.Squares[row]))
		for col := range v.Squares[row] {
			squares[row][col] = squareToDTO(v.Squares[row][col])
		}
	}

	dto := gridDTO{
		ID:              v.ID,
		Name:            v.Name,
		HomeTeam:        teamToDTO(v.HomeTeam),
		AwayTeam:        teamToDTO(v.AwayTeam),
		HomeNumbers:     append([]int(nil), v.HomeNumbers...),
		AwayNumbers:     append([]int(nil), v.AwayNumbers...),
		Squares:         squares,
		Pool:            poolToDTO(v.ResolvedPool()),
		OwnerLabels:     append([]string(nil), v.OwnerLabels...),
		SharedCode:      v.SharedCode,
		FilledCount:     v.FilledCount(),
		IsComplete:      v.IsComplete(),
		CreatedAtUTC:    v.CreatedAt.UTC().Format(time.RFC3339),
		LastModifiedUTC: v.LastModified.UTC().Format(time.RFC3339),
	}
	if v.CurrentScore != nil {
		score := scoreToDTO(*v.CurrentScore)
		dto.CurrentScore = &score
	}
	return dto
}

func poolStructureFromRequest(req *poolStructureRequest) *pool.Structure {
	if req == nil {
		return nil
	}

	structure := pool.Structure{
		Type: pool.Type{
			Kind:            pool.TypeKind(req.Type),
			Quarters:        append([]int(nil), req.Quarters...),
			MaxScoreChanges: req.MaxScoreChanges,
		},
		Payout: pool.Payout{
			Kind:         pool.PayoutKind(req.Payout),
			Amounts:      append([]float64(nil), req.Amounts...),
			Percentages:  append([]float64(nil), req.Percentages...),
			Descriptions: append([]string(nil), req.Descriptions...),
		},
		TotalAmount:  req.TotalAmount,
		CurrencyCode: req.CurrencyCode,
		Description:  req.Description,
		RulesSummary: req.RulesSummary,
	}
	for _, c := range req.CustomPeriods {
		structure.Type.Custom = append(structure.Type.Custom, pool.CustomPeriod{ID: c.ID, Label: c.Label})
	}
	return &structure
}

func scoreFromRequest(req applyScoreRequest) game.Score {
	score := game.Score{
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
		Quarter:   req.Quarter,
		Clock:     req.Clock,
		IsActive:  req.IsActive,
		IsOver:    req.IsOver,
	}
	if len(req.Quarters) > 0 {
		score.Quarters = make(game.QuarterScores, len(req.Quarters))
		for n, line := range req.Quarters {
			score.Quarters[n] = game.QuarterLine{Home: line.Home, Away: line.Away}
		}
	}
	return score
}

func scanCellsFromRequest(cells []scanCellRecord) []usecase.ScanCell {
	out := make([]usecase.ScanCell, 0, len(cells))
	for _, c := range cells {
		out = append(out, usecase.ScanCell{Row: c.Row, Col: c.Col, Text: c.Text})
	}
	return out
}
