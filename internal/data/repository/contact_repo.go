package repository

import (
	"context"
	"errors"
	"fmt"

	"travel-agency/internal/data/entity"
	"travel-agency/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	FindByID(ctx context.Context, id int64) (*entity.Contact, error)
	FindAll(ctx context.Context) ([]*entity.Contact, error)
	MarkReplied(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type contactRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewContactRepository(db database.PgxIface, log *zap.Logger) ContactRepository {
	return &contactRepository{
		db:  db,
		log: log.With(zap.String("repository", "contact")),
	}
}

const contactColumns = `id, name, email, phone, subject, message, replied, replied_at, created_at`

func scanContact(row pgx.Row, c *entity.Contact) error {
	return row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.Replied, &c.RepliedAt, &c.CreatedAt)
}

func (r *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	query := `
		INSERT INTO contacts (name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Subject,
		contact.Message,
	).Scan(&contact.ID, &contact.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create contact", zap.Error(err), zap.String("email", contact.Email))
		return fmt.Errorf("create contact from %s: %w", contact.Email, err)
	}

	return nil
}

func (r *contactRepository) FindByID(ctx context.Context, id int64) (*entity.Contact, error) {
	var contact entity.Contact
	err := scanContact(r.db.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id), &contact)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find contact", zap.Error(err), zap.Int64("contact_id", id))
		return nil, fmt.Errorf("find contact %d: %w", id, err)
	}
	return &contact, nil
}

func (r *contactRepository) FindAll(ctx context.Context) ([]*entity.Contact, error) {
	rows, err := r.db.Query(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		r.log.Error("Failed to list contacts", zap.Error(err))
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*entity.Contact
	for rows.Next() {
		var contact entity.Contact
		if err := scanContact(rows, &contact); err != nil {
			return nil, fmt.Errorf("scan contact row: %w", err)
		}
		contacts = append(contacts, &contact)
	}

	return contacts, rows.Err()
}

func (r *contactRepository) MarkReplied(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `UPDATE contacts SET replied = TRUE, replied_at = NOW() WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to mark contact replied", zap.Error(err), zap.Int64("contact_id", id))
		return fmt.Errorf("mark contact %d replied: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("contact %d %w", id, ErrNotFound)
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete contact", zap.Error(err), zap.Int64("contact_id", id))
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("contact %d %w", id, ErrNotFound)
	}
	return nil
}
