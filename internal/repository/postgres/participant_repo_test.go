package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventosia/internal/domain"
)

func TestParticipantRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO participants`).
					WithArgs(int64(9), int64(5), int(domain.StatusInvited)).
					WillReturnRows(sqlmock.NewRows([]string{"id_participants"}).AddRow(int64(1)))
			},
		},
		{
			name: "duplicate pair returns ErrAlreadyRegistered",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO participants`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrAlreadyRegistered,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO participants`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewParticipantRepository(db)
			p, err := repo.Create(ctx, 9, 5, domain.StatusInvited)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, int64(1), p.ID)
				require.Equal(t, domain.StatusInvited, p.Status)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestParticipantRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id_participants", "user_id", "event_id", "participant_status_id"}).
			AddRow(int64(1), int64(9), int64(5), int(domain.StatusConfirmed))
		mock.ExpectQuery(`UPDATE participants`).
			WithArgs(int64(5), int64(9), int(domain.StatusConfirmed)).
			WillReturnRows(rows)

		repo := NewParticipantRepository(db)
		p, err := repo.UpdateStatus(ctx, 5, 9, domain.StatusConfirmed)
		require.NoError(t, err)
		require.Equal(t, domain.StatusConfirmed, p.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matching row returns ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE participants`).
			WillReturnError(sql.ErrNoRows)

		repo := NewParticipantRepository(db)
		_, err = repo.UpdateStatus(ctx, 5, 9, domain.StatusConfirmed)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestParticipantRepository_GetByEventAndUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id_participants", "user_id", "event_id", "participant_status_id"}).
			AddRow(int64(3), int64(9), int64(5), int(domain.StatusInvited))
		mock.ExpectQuery(`SELECT id_participants, user_id, event_id, participant_status_id`).
			WithArgs(int64(5), int64(9)).
			WillReturnRows(rows)

		repo := NewParticipantRepository(db)
		p, err := repo.GetByEventAndUser(ctx, 5, 9)
		require.NoError(t, err)
		require.Equal(t, int64(3), p.ID)
		require.Equal(t, domain.StatusInvited, p.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing returns ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id_participants`).
			WillReturnError(sql.ErrNoRows)

		repo := NewParticipantRepository(db)
		_, err = repo.GetByEventAndUser(ctx, 5, 9)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestParticipantRepository_ListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id_participants", "user_id", "user_name", "user_last_name", "event_id", "event_name", "status_name"}).
		AddRow(int64(1), int64(9), "Ana", "García", int64(5), "Go Meetup", "invited").
		AddRow(int64(2), int64(10), "Luis", "Pérez", int64(5), "Go Meetup", "confirmed")
	mock.ExpectQuery(`SELECT p.id_participants`).WillReturnRows(rows)

	repo := NewParticipantRepository(db)
	details, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 2)
	require.Equal(t, "Go Meetup", details[0].EventName)
	require.Equal(t, "confirmed", details[1].StatusName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepository_DeleteByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id_participants", "user_id", "event_id", "participant_status_id"}).
		AddRow(int64(1), int64(9), int64(5), int(domain.StatusCancelled))
	mock.ExpectQuery(`DELETE FROM participants`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	repo := NewParticipantRepository(db)
	p, err := repo.DeleteByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
