package repository

import (
	"context"
	"errors"
	"fmt"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ContactRepository interface {
	// Upsert creates the contact or, when the email is known, updates its
	// phone. ID and timestamps are set to the stored row.
	Upsert(ctx context.Context, contact *entity.Contact) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
}

type contactRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewContactRepository(db database.Querier, log *zap.Logger) ContactRepository {
	return &contactRepository{
		db:  db,
		log: log.With(zap.String("repository", "contact")),
	}
}

func (r *contactRepository) Upsert(ctx context.Context, contact *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET phone = EXCLUDED.phone, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		contact.ID,
		contact.Email,
		contact.Phone,
		contact.CreatedAt,
		contact.UpdatedAt,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to upsert contact",
			zap.Error(err),
			zap.String("email", contact.Email),
		)
		return fmt.Errorf("failed to upsert contact: %w", err)
	}

	return nil
}

func (r *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	query := `SELECT id, email, phone, created_at, updated_at FROM contacts WHERE id = $1`

	var c entity.Contact
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find contact", zap.Error(err), zap.String("contact_id", id.String()))
		return nil, fmt.Errorf("failed to find contact: %w", err)
	}

	return &c, nil
}
