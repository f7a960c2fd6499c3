package repository

import (
	"context"
	"fmt"

	"speaker-booking/internal/data/entity"
	"speaker-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SpeakerRepository interface {
	CreateProfile(ctx context.Context, profile *entity.SpeakerProfile) error
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.SpeakerProfile, error)

	// Joined user+profile views
	FindSpeakerByID(ctx context.Context, userID uuid.UUID) (*entity.Speaker, error)
	ListSpeakers(ctx context.Context, search string, limit, offset int) ([]*entity.Speaker, error)
	CountSpeakers(ctx context.Context, search string) (int64, error)
}

type speakerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSpeakerRepository(db database.PgxIface, log *zap.Logger) SpeakerRepository {
	return &speakerRepository{
		db:  db,
		log: log.With(zap.String("repository", "speaker")),
	}
}

func (r *speakerRepository) CreateProfile(ctx context.Context, profile *entity.SpeakerProfile) error {
	query := `
		INSERT INTO speaker_profiles (id, user_id, expertise, price_per_session, bio, profile_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Expertise,
		profile.PricePerSession,
		profile.Bio,
		profile.ProfileImage,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create speaker profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("create speaker profile for user %s: %w", profile.UserID.String(), err)
	}

	return nil
}

func (r *speakerRepository) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.SpeakerProfile, error) {
	query := `
		SELECT id, user_id, expertise, price_per_session, bio, profile_image, created_at, updated_at
		FROM speaker_profiles
		WHERE user_id = $1
	`

	var profile entity.SpeakerProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Expertise,
		&profile.PricePerSession,
		&profile.Bio,
		&profile.ProfileImage,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find speaker profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find speaker profile for user %s: %w", userID.String(), err)
	}

	return &profile, nil
}

const speakerSelect = `
	SELECT u.id, u.first_name, u.last_name, u.email, u.password, u.user_type, u.email_verified, u.is_active, u.created_at, u.updated_at,
	       p.id, p.user_id, p.expertise, p.price_per_session, p.bio, p.profile_image, p.created_at, p.updated_at
	FROM users u
	JOIN speaker_profiles p ON p.user_id = u.id
	WHERE u.user_type = 'speaker' AND u.is_active = true
`

func scanSpeaker(row pgx.Row) (*entity.Speaker, error) {
	var s entity.Speaker
	err := row.Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.Email,
		&s.PasswordHash,
		&s.UserType,
		&s.EmailVerified,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.Profile.ID,
		&s.Profile.UserID,
		&s.Profile.Expertise,
		&s.Profile.PricePerSession,
		&s.Profile.Bio,
		&s.Profile.ProfileImage,
		&s.Profile.CreatedAt,
		&s.Profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *speakerRepository) FindSpeakerByID(ctx context.Context, userID uuid.UUID) (*entity.Speaker, error) {
	query := speakerSelect + ` AND u.id = $1`

	speaker, err := scanSpeaker(r.db.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find speaker by ID",
			zap.Error(err),
			zap.String("speaker_id", userID.String()),
		)
		return nil, fmt.Errorf("find speaker by ID %s: %w", userID.String(), err)
	}

	return speaker, nil
}

func (r *speakerRepository) ListSpeakers(ctx context.Context, search string, limit, offset int) ([]*entity.Speaker, error) {
	query := speakerSelect + `
		AND ($1 = '' OR u.first_name ILIKE '%' || $1 || '%'
		     OR u.last_name ILIKE '%' || $1 || '%'
		     OR EXISTS (SELECT 1 FROM unnest(p.expertise) e WHERE e ILIKE '%' || $1 || '%'))
		ORDER BY u.created_at
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		r.log.Error("Failed to list speakers",
			zap.Error(err),
			zap.String("search", search),
		)
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	defer rows.Close()

	var speakers []*entity.Speaker
	for rows.Next() {
		speaker, err := scanSpeaker(rows)
		if err != nil {
			r.log.Error("Failed to scan speaker row", zap.Error(err))
			return nil, fmt.Errorf("scan speaker row: %w", err)
		}
		speakers = append(speakers, speaker)
	}

	return speakers, nil
}

func (r *speakerRepository) CountSpeakers(ctx context.Context, search string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM users u
		JOIN speaker_profiles p ON p.user_id = u.id
		WHERE u.user_type = 'speaker' AND u.is_active = true
		  AND ($1 = '' OR u.first_name ILIKE '%' || $1 || '%'
		       OR u.last_name ILIKE '%' || $1 || '%'
		       OR EXISTS (SELECT 1 FROM unnest(p.expertise) e WHERE e ILIKE '%' || $1 || '%'))
	`

	var count int64
	err := r.db.QueryRow(ctx, query, search).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count speakers", zap.Error(err))
		return 0, fmt.Errorf("count speakers: %w", err)
	}

	return count, nil
}
