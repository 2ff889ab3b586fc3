package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventosia/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeParticipantService implements domain.ParticipantService for handler tests.
type fakeParticipantService struct {
	createErr error
	getErr    error
	updateErr error
	deleteErr error
	listErr   error
	lastID    int64
}

func (f *fakeParticipantService) Create(ctx context.Context, userID, eventID int64, status domain.ParticipantStatus, actor domain.Role) (*domain.Participant, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Participant{ID: 1, UserID: userID, EventID: eventID, Status: status}, nil
}

func (f *fakeParticipantService) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	f.lastID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &domain.Participant{ID: id, UserID: 9, EventID: 5, Status: domain.StatusInvited}, nil
}

func (f *fakeParticipantService) UpdateByID(ctx context.Context, id int64, status domain.ParticipantStatus, actor domain.Role) (*domain.Participant, error) {
	f.lastID = id
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &domain.Participant{ID: id, UserID: 9, EventID: 5, Status: status}, nil
}

func (f *fakeParticipantService) DeleteByID(ctx context.Context, id int64, actor domain.Role) (*domain.Participant, error) {
	f.lastID = id
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &domain.Participant{ID: id, UserID: 9, EventID: 5, Status: domain.StatusCancelled}, nil
}

func (f *fakeParticipantService) ListAll(ctx context.Context) ([]*domain.ParticipantDetail, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []*domain.ParticipantDetail{
		{ID: 1, UserID: 9, UserName: "Ana", EventID: 5, EventName: "Go Meetup", StatusName: "invited"},
	}, nil
}

func TestParticipantController_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		role           domain.Role
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:           "success",
			body:           `{"user_id":9,"event_id":5,"participant_status_id":3}`,
			role:           domain.RoleAdmin,
			wantStatus:     http.StatusCreated,
			wantBodySubstr: `"participant_status_id":3`,
		},
		{
			name:           "invalid status",
			body:           `{"user_id":9,"event_id":5,"participant_status_id":99}`,
			role:           domain.RoleAdmin,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "participant_status_id is invalid",
		},
		{
			name:           "forbidden",
			body:           `{"user_id":9,"event_id":5,"participant_status_id":3}`,
			role:           domain.RoleAttendee,
			fakeErr:        domain.ErrForbidden,
			wantStatus:     http.StatusForbidden,
			wantBodySubstr: "No tienes permisos para gestionar participantes.",
		},
		{
			name:           "already registered",
			body:           `{"user_id":9,"event_id":5,"participant_status_id":3}`,
			role:           domain.RoleAdmin,
			fakeErr:        domain.ErrAlreadyRegistered,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "El usuario ya está registrado en este evento.",
		},
		{
			name:           "service error",
			body:           `{"user_id":9,"event_id":5,"participant_status_id":3}`,
			role:           domain.RoleAdmin,
			fakeErr:        errors.New("db down"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "Error al procesar la solicitud.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeParticipantService{createErr: tt.fakeErr}
			ctrl := NewParticipantController(testLogger(), fake)
			req := httptest.NewRequest(http.MethodPost, "/api/participants", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req = withActor(req, 1, tt.role)
			rr := httptest.NewRecorder()

			ctrl.Create(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Contains(t, rr.Body.String(), tt.wantBodySubstr, "response body")
		})
	}
}

func TestParticipantController_Get(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			id:         "42",
			wantStatus: http.StatusOK,
		},
		{
			name:           "not found",
			id:             "42",
			fakeErr:        domain.ErrParticipantNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "Participante no encontrado.",
		},
		{
			name:           "invalid id",
			id:             "abc",
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "Identificador de participante inválido.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeParticipantService{getErr: tt.fakeErr}
			ctrl := NewParticipantController(testLogger(), fake)
			req := httptest.NewRequest(http.MethodGet, "/api/participants/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			req = withActor(req, 1, domain.RoleAdmin)
			rr := httptest.NewRecorder()

			ctrl.Get(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantBodySubstr != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBodySubstr, "response body")
			}
			if tt.wantStatus == http.StatusOK {
				var p domain.Participant
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&p))
				assert.Equal(t, int64(42), p.ID)
			}
		})
	}
}

func TestParticipantController_Update(t *testing.T) {
	fake := &fakeParticipantService{}
	ctrl := NewParticipantController(testLogger(), fake)
	req := httptest.NewRequest(http.MethodPut, "/api/participants/42", bytes.NewBufferString(`{"participant_status_id":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", "42")
	req = withActor(req, 1, domain.RoleEventManager)
	rr := httptest.NewRecorder()

	ctrl.Update(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var p domain.Participant
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&p))
	assert.Equal(t, domain.StatusConfirmed, p.Status)
	assert.Equal(t, int64(42), fake.lastID)
}

func TestParticipantController_Delete_NotFound(t *testing.T) {
	fake := &fakeParticipantService{deleteErr: domain.ErrParticipantNotFound}
	ctrl := NewParticipantController(testLogger(), fake)
	req := httptest.NewRequest(http.MethodDelete, "/api/participants/42", nil)
	req.SetPathValue("id", "42")
	req = withActor(req, 1, domain.RoleAdmin)
	rr := httptest.NewRecorder()

	ctrl.Delete(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Participante no encontrado.")
}

func TestParticipantController_List(t *testing.T) {
	fake := &fakeParticipantService{}
	ctrl := NewParticipantController(testLogger(), fake)
	req := httptest.NewRequest(http.MethodGet, "/api/participants", nil)
	req = withActor(req, 1, domain.RoleAdmin)
	rr := httptest.NewRecorder()

	ctrl.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var details []*domain.ParticipantDetail
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&details))
	require.Len(t, details, 1)
	assert.Equal(t, "Go Meetup", details[0].EventName)
}
