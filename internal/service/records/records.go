package records

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
	"github.com/parkjy/idol-tycoon-go/internal/service/cache"
	"github.com/parkjy/idol-tycoon-go/pkg/errors"
)

// RunRecord is the summary of one finished playthrough. Records exist only
// for the leaderboard; live game state is never persisted.
type RunRecord struct {
	ID              int64     `json:"id"`
	SessionID       string    `json:"sessionId"`
	CompanyName     string    `json:"companyName"`
	FinalMoney      int64     `json:"finalMoney"`
	FinalReputation int64     `json:"finalReputation"`
	FinalFanCount   int64     `json:"finalFanCount"`
	TurnsSurvived   int       `json:"turnsSurvived"`
	Releases        int       `json:"releases"`
	EndedAt         time.Time `json:"endedAt"`
}

// RunStore persists finished runs.
type RunStore interface {
	SaveRun(ctx context.Context, record *RunRecord) error
	TopRuns(ctx context.Context, limit int) ([]*RunRecord, error)
}

// PostgresRunStore backs RunStore with a single table.
type PostgresRunStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresRunStore(db *sql.DB, logger *zap.Logger) *PostgresRunStore {
	return &PostgresRunStore{db: db, logger: logger}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS game_runs (
	id               BIGSERIAL PRIMARY KEY,
	session_id       TEXT NOT NULL,
	company_name     TEXT NOT NULL,
	final_money      BIGINT NOT NULL,
	final_reputation BIGINT NOT NULL,
	final_fan_count  BIGINT NOT NULL,
	turns_survived   INT NOT NULL,
	releases         INT NOT NULL,
	ended_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_game_runs_ranking
	ON game_runs (turns_survived DESC, final_fan_count DESC);`

// EnsureSchema creates the run table when it does not exist yet.
func (s *PostgresRunStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaDDL); err != nil {
		return errors.NewGameError("failed to ensure records schema", errors.CodeRecords, 500, nil).WithCause(err)
	}
	return nil
}

func (s *PostgresRunStore) SaveRun(ctx context.Context, record *RunRecord) error {
	const query = `
		INSERT INTO game_runs
			(session_id, company_name, final_money, final_reputation, final_fan_count, turns_survived, releases, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		record.SessionID,
		record.CompanyName,
		record.FinalMoney,
		record.FinalReputation,
		record.FinalFanCount,
		record.TurnsSurvived,
		record.Releases,
		record.EndedAt,
	).Scan(&record.ID)
	if err != nil {
		return errors.NewGameError("failed to save run", errors.CodeRecords, 500, map[string]any{
			"session_id": record.SessionID,
		}).WithCause(err)
	}
	return nil
}

func (s *PostgresRunStore) TopRuns(ctx context.Context, limit int) ([]*RunRecord, error) {
	const query = `
		SELECT id, session_id, company_name, final_money, final_reputation, final_fan_count, turns_survived, releases, ended_at
		FROM game_runs
		ORDER BY turns_survived DESC, final_fan_count DESC, id ASC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.NewGameError("failed to query top runs", errors.CodeRecords, 500, nil).WithCause(err)
	}
	defer rows.Close()

	runs := make([]*RunRecord, 0, limit)
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(
			&r.ID,
			&r.SessionID,
			&r.CompanyName,
			&r.FinalMoney,
			&r.FinalReputation,
			&r.FinalFanCount,
			&r.TurnsSurvived,
			&r.Releases,
			&r.EndedAt,
		); err != nil {
			return nil, errors.NewGameError("failed to scan run", errors.CodeRecords, 500, nil).WithCause(err)
		}
		runs = append(runs, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewGameError("failed to iterate runs", errors.CodeRecords, 500, nil).WithCause(err)
	}

	return runs, nil
}

// Service records finished runs and serves the leaderboard, with a short
// Redis cache in front of the store. All writes are best effort from the
// caller's point of view.
type Service struct {
	store  RunStore
	cache  *cache.CacheService
	logger *zap.Logger
}

func NewService(store RunStore, cacheService *cache.CacheService, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cacheService,
		logger: logger,
	}
}

// RecordGameOver summarizes a finished playthrough and stores it.
func (s *Service) RecordGameOver(ctx context.Context, sessionID string, state *domain.GameState) {
	record := &RunRecord{
		SessionID:       sessionID,
		CompanyName:     state.Company.Name,
		FinalMoney:      state.Company.Money,
		FinalReputation: state.Company.Reputation,
		FinalFanCount:   state.Company.FanCount,
		TurnsSurvived:   state.Turn,
		Releases:        len(state.History),
		EndedAt:         time.Now(),
	}

	if err := s.store.SaveRun(ctx, record); err != nil {
		s.logger.Warn("Failed to record finished run",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return
	}

	s.logger.Info("Run recorded",
		zap.String("session_id", sessionID),
		zap.String("company", record.CompanyName),
		zap.Int("turns", record.TurnsSurvived))

	if s.cache != nil {
		if err := s.cache.Del(ctx, constants.Records.LeaderboardKey); err != nil {
			s.logger.Debug("Leaderboard cache invalidation failed", zap.Error(err))
		}
	}
}

// Leaderboard returns the best runs, newest cache first.
func (s *Service) Leaderboard(ctx context.Context) ([]*RunRecord, error) {
	if s.cache != nil {
		var cached []*RunRecord
		if err := s.cache.Get(ctx, constants.Records.LeaderboardKey, &cached); err == nil && cached != nil {
			return cached, nil
		}
	}

	runs, err := s.store.TopRuns(ctx, constants.Records.LeaderboardSize)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, constants.Records.LeaderboardKey, runs, constants.Records.LeaderboardTTL); err != nil {
			s.logger.Debug("Leaderboard cache fill failed", zap.Error(err))
		}
	}

	return runs, nil
}
