package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/califeryan/goutte-server/internal/models"
)

type mockAdminService struct {
	CreateFunc          func(ctx context.Context, pseudonyme, password string) (*models.AdminAccount, error)
	GetByIDFunc         func(ctx context.Context, id int64) (*models.AdminAccount, error)
	GetByPseudonymeFunc func(ctx context.Context, pseudonyme string) (*models.AdminAccount, error)
}

func (m *mockAdminService) Create(ctx context.Context, pseudonyme, password string) (*models.AdminAccount, error) {
	return m.CreateFunc(ctx, pseudonyme, password)
}

func (m *mockAdminService) GetByID(ctx context.Context, id int64) (*models.AdminAccount, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockAdminService) GetByPseudonyme(ctx context.Context, pseudonyme string) (*models.AdminAccount, error) {
	return m.GetByPseudonymeFunc(ctx, pseudonyme)
}

func TestAdminCreate(t *testing.T) {
	svc := &mockAdminService{
		CreateFunc: func(ctx context.Context, pseudonyme, password string) (*models.AdminAccount, error) {
			return &models.AdminAccount{ID: 1000, Pseudonyme: pseudonyme}, nil
		},
	}
	h := &AdminHandler{AdminService: svc, AdminToken: "hunter2"}

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid",
			body:       `{"name":"root","password":"pw","authToken":"hunter2"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "wrong token",
			body:       `{"name":"root","password":"pw","authToken":"nope"}`,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing password",
			body:       `{"name":"root","authToken":"hunter2"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid json",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admins", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d; want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAdminGetByID(t *testing.T) {
	svc := &mockAdminService{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.AdminAccount, error) {
			if id != 1000 {
				return nil, models.ErrNotFound
			}
			return &models.AdminAccount{ID: 1000, Pseudonyme: "root"}, nil
		},
	}
	h := &AdminHandler{AdminService: svc, AdminToken: "hunter2"}

	req := withIDParam(httptest.NewRequest(http.MethodGet, "/admins/1000", nil), 1000)
	rec := httptest.NewRecorder()
	h.GetByID(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "root") {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req = withIDParam(httptest.NewRequest(http.MethodGet, "/admins/1234", nil), 1234)
	rec = httptest.NewRecorder()
	h.GetByID(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", rec.Code)
	}
}

func TestAdminGetByPseudonyme(t *testing.T) {
	svc := &mockAdminService{
		GetByPseudonymeFunc: func(ctx context.Context, pseudonyme string) (*models.AdminAccount, error) {
			if pseudonyme != "root" {
				return nil, models.ErrNotFound
			}
			return &models.AdminAccount{ID: 1000, Pseudonyme: "root"}, nil
		},
	}
	h := &AdminHandler{AdminService: svc, AdminToken: "hunter2"}

	req := httptest.NewRequest(http.MethodGet, "/admins?pseudonyme=root", nil)
	rec := httptest.NewRecorder()
	h.GetByPseudonyme(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d; want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admins", nil)
	rec = httptest.NewRecorder()
	h.GetByPseudonyme(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing pseudonyme: status = %d; want 400", rec.Code)
	}
}
