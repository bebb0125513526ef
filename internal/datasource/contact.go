// internal/datasource/contact.go
package datasource

import (
	"context"
	"database/sql"
	stderrors "errors"

	"career-workers/internal/common/errors"
	"career-workers/internal/models"
)

const contactQuery = `SELECT name, email, phone FROM users WHERE id = $1`

type ContactStore struct {
	db *sql.DB
}

func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

func (s *ContactStore) GetContact(ctx context.Context, userID string) (*models.Contact, error) {
	var name, email, phone sql.NullString
	err := s.db.QueryRowContext(ctx, contactQuery, userID).Scan(&name, &email, &phone)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewContactNotFoundError(userID)
	}
	if err != nil {
		return nil, errors.NewProfileFetchFailedError(userID, err)
	}
	return &models.Contact{
		UserID: userID,
		Name:   name.String,
		Email:  email.String,
		Phone:  phone.String,
	}, nil
}
