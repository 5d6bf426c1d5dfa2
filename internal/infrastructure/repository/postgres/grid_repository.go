package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/boxpool/boxpool/internal/domain/grid"
	qb "github.com/boxpool/boxpool/internal/platform/querybuilder"
)

type GridRepository struct {
	db *sqlx.DB
}

func NewGridRepository(db *sqlx.DB) *GridRepository {
	return &GridRepository{db: db}
}

func (r *GridRepository) List(ctx context.Context) ([]grid.Grid, error) {
	query, args, err := qb.Select("*").From("grids").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select grids query: %w", err)
	}

	var rows []gridTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select grids: %w", err)
	}

	out := make([]grid.Grid, 0, len(rows))
	for _, row := range rows {
		g, err := rowToGrid(row)
		if err != nil {
			return nil, fmt.Errorf("decode grid %s: %w", row.PublicID, err)
		}
		out = append(out, g)
	}

	return out, nil
}

func (r *GridRepository) GetByID(ctx context.Context, gridID string) (grid.Grid, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", gridID))
}

func (r *GridRepository) GetBySharedCode(ctx context.Context, code string) (grid.Grid, bool, error) {
	if code == "" {
		return grid.Grid{}, false, nil
	}
	return r.getOne(ctx, qb.Eq("shared_code", code))
}

func (r *GridRepository) getOne(ctx context.Context, match qb.Condition) (grid.Grid, bool, error) {
	query, args, err := qb.Select("*").From("grids").
		Where(match, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return grid.Grid{}, false, fmt.Errorf("build get grid query: %w", err)
	}

	var row gridTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return grid.Grid{}, false, nil
		}
		return grid.Grid{}, false, fmt.Errorf("get grid: %w", err)
	}

	g, err := rowToGrid(row)
	if err != nil {
		return grid.Grid{}, false, fmt.Errorf("decode grid %s: %w", row.PublicID, err)
	}

	return g, true, nil
}

// Upsert updates the live row when the grid already exists, which covers
// every steady-state mutation (claims, labels, share codes, score refreshes).
// The insert path only runs for a grid's first write and keeps a conflict
// clause so a racing create of the same id stays a write, not an error.
func (r *GridRepository) Upsert(ctx context.Context, g grid.Grid) error {
	model, err := gridToUpsertModel(g)
	if err != nil {
		return fmt.Errorf("encode grid %s: %w", g.ID, err)
	}

	updated, err := r.updateExisting(ctx, model)
	if err != nil {
		return err
	}
	if updated {
		return nil
	}

	query, args, err := qb.InsertModel("grids", model, `ON CONFLICT (public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    name = EXCLUDED.name,
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    home_numbers = EXCLUDED.home_numbers,
    away_numbers = EXCLUDED.away_numbers,
    squares = EXCLUDED.squares,
    pool = EXCLUDED.pool,
    owner_labels = EXCLUDED.owner_labels,
    shared_code = EXCLUDED.shared_code,
    current_score = EXCLUDED.current_score,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build insert grid query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert grid %s: %w", g.ID, err)
	}

	return nil
}

func (r *GridRepository) updateExisting(ctx context.Context, model gridUpsertModel) (bool, error) {
	query, args, err := qb.Update("grids").
		Set("name", model.Name).
		Set("home_team", model.HomeTeam).
		Set("away_team", model.AwayTeam).
		Set("home_numbers", model.HomeNumbers).
		Set("away_numbers", model.AwayNumbers).
		Set("squares", model.Squares).
		Set("pool", model.Pool).
		Set("owner_labels", model.OwnerLabels).
		Set("shared_code", model.SharedCode).
		Set("current_score", model.CurrentScore).
		Set("updated_at", model.UpdatedAt).
		Where(qb.Eq("public_id", model.PublicID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update grid query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update grid %s: %w", model.PublicID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update grid %s: %w", model.PublicID, err)
	}

	return affected > 0, nil
}

func gridToUpsertModel(g grid.Grid) (gridUpsertModel, error) {
	homeTeam, err := sonic.MarshalString(teamToDoc(g.HomeTeam))
	if err != nil {
		return gridUpsertModel{}, fmt.Errorf("marshal home team: %w", err)
	}
	awayTeam, err := sonic.MarshalString(teamToDoc(g.AwayTeam))
	if err != nil {
		return gridUpsertModel{}, fmt.Errorf("marshal away team: %w", err)
	}
	squares, err := sonic.MarshalString(squaresToDocs(g.Squares))
	if err != nil {
		return gridUpsertModel{}, fmt.Errorf("marshal squares: %w", err)
	}

	model := gridUpsertModel{
		PublicID:    g.ID,
		Name:        g.Name,
		HomeTeam:    homeTeam,
		AwayTeam:    awayTeam,
		HomeNumbers: intsToArray(g.HomeNumbers),
		AwayNumbers: intsToArray(g.AwayNumbers),
		Squares:     squares,
		OwnerLabels: pq.StringArray(g.OwnerLabels),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.LastModified,
	}

	if g.Pool != nil {
		encoded, err := sonic.MarshalString(poolToDoc(*g.Pool))
		if err != nil {
			return gridUpsertModel{}, fmt.Errorf("marshal pool: %w", err)
		}
		model.Pool = sql.NullString{String: encoded, Valid: true}
	}
	if g.SharedCode != "" {
		model.SharedCode = sql.NullString{String: g.SharedCode, Valid: true}
	}
	if g.CurrentScore != nil {
		encoded, err := sonic.MarshalString(scoreToDoc(*g.CurrentScore))
		if err != nil {
			return gridUpsertModel{}, fmt.Errorf("marshal current score: %w", err)
		}
		model.CurrentScore = sql.NullString{String: encoded, Valid: true}
	}

	return model, nil
}

// rowToGrid decodes a stored row. A NULL pool column is a grid persisted
// before pool structures existed; it stays nil and resolves to the default
// structure at read time.
func rowToGrid(row gridTableModel) (grid.Grid, error) {
	var homeTeam, awayTeam teamDoc
	if err := sonic.UnmarshalString(row.HomeTeam, &homeTeam); err != nil {
		return grid.Grid{}, fmt.Errorf("unmarshal home team: %w", err)
	}
	if err := sonic.UnmarshalString(row.AwayTeam, &awayTeam); err != nil {
		return grid.Grid{}, fmt.Errorf("unmarshal away team: %w", err)
	}

	var squares [][]squareDoc
	if err := sonic.UnmarshalString(row.Squares, &squares); err != nil {
		return grid.Grid{}, fmt.Errorf("unmarshal squares: %w", err)
	}

	g := grid.Grid{
		ID:           row.PublicID,
		Name:         row.Name,
		HomeTeam:     docToTeam(homeTeam),
		AwayTeam:     docToTeam(awayTeam),
		HomeNumbers:  arrayToInts(row.HomeNumbers),
		AwayNumbers:  arrayToInts(row.AwayNumbers),
		Squares:      docsToSquares(squares),
		OwnerLabels:  []string(row.OwnerLabels),
		CreatedAt:    row.CreatedAt,
		LastModified: row.UpdatedAt,
	}

	if row.Pool.Valid {
		var doc poolDoc
		if err := sonic.UnmarshalString(row.Pool.String, &doc); err != nil {
			return grid.Grid{}, fmt.Errorf("unmarshal pool: %w", err)
		}
		structure := docToPool(doc)
		g.Pool = &structure
	}
	if row.SharedCode.Valid {
		g.SharedCode = row.SharedCode.String
	}
	if row.CurrentScore.Valid {
		var doc scoreDoc
		if err := sonic.UnmarshalString(row.CurrentScore.String, &doc); err != nil {
			return grid.Grid{}, fmt.Errorf("unmarshal current score: %w", err)
		}
		score := docToScore(doc)
		g.CurrentScore = &score
	}

	return g, nil
}
