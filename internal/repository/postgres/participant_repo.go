package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventosia/internal/domain"
)

const uniqueViolation = "23505"

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{DB: db}
}

func (r *participantRepository) Create(ctx context.Context, userID, eventID int64, status domain.ParticipantStatus) (*domain.Participant, error) {
	query := `
		INSERT INTO participants (user_id, event_id, participant_status_id)
		VALUES ($1, $2, $3)
		RETURNING id_participants
	`
	p := &domain.Participant{UserID: userID, EventID: eventID, Status: status}
	err := r.DB.QueryRowContext(ctx, query, userID, eventID, int(status)).Scan(&p.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Participant, error) {
	query := `
		SELECT id_participants, user_id, event_id, participant_status_id
		FROM participants
		WHERE event_id = $1 AND user_id = $2
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, eventID, userID))
}

func (r *participantRepository) UpdateStatus(ctx context.Context, eventID, userID int64, status domain.ParticipantStatus) (*domain.Participant, error) {
	query := `
		UPDATE participants
		SET participant_status_id = $3
		WHERE event_id = $1 AND user_id = $2
		RETURNING id_participants, user_id, event_id, participant_status_id
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, eventID, userID, int(status)))
}

func (r *participantRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	query := `
		SELECT id_participants, user_id, event_id, participant_status_id
		FROM participants
		WHERE id_participants = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *participantRepository) UpdateByID(ctx context.Context, id int64, status domain.ParticipantStatus) (*domain.Participant, error) {
	query := `
		UPDATE participants
		SET participant_status_id = $2
		WHERE id_participants = $1
		RETURNING id_participants, user_id, event_id, participant_status_id
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id, int(status)))
}

func (r *participantRepository) DeleteByID(ctx context.Context, id int64) (*domain.Participant, error) {
	query := `
		DELETE FROM participants
		WHERE id_participants = $1
		RETURNING id_participants, user_id, event_id, participant_status_id
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *participantRepository) ListAll(ctx context.Context) ([]*domain.ParticipantDetail, error) {
	query := `
		SELECT p.id_participants,
		       p.user_id,
		       u.name AS user_name,
		       u.last_name AS user_last_name,
		       p.event_id,
		       e.name AS event_name,
		       ps.status_name
		FROM participants p
		JOIN users u ON p.user_id = u.id_user
		JOIN events e ON p.event_id = e.id_event
		JOIN participant_status ps ON p.participant_status_id = ps.id_participant_status
		ORDER BY p.id_participants ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*domain.ParticipantDetail
	for rows.Next() {
		d := &domain.ParticipantDetail{}
		if err := rows.Scan(&d.ID, &d.UserID, &d.UserName, &d.UserLastName, &d.EventID, &d.EventName, &d.StatusName); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if details == nil {
		details = []*domain.ParticipantDetail{}
	}
	return details, nil
}

func (r *participantRepository) scanOne(row *sql.Row) (*domain.Participant, error) {
	p := &domain.Participant{}
	var status int
	err := row.Scan(&p.ID, &p.UserID, &p.EventID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Status = domain.ParticipantStatus(status)
	return p, nil
}
