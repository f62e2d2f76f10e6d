package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centralcaixa/backoffice/internal/brl"
	"github.com/centralcaixa/backoffice/internal/plan"
	"github.com/centralcaixa/backoffice/internal/user"
)

type fakeUserRepo struct {
	stored  *user.User
	created *user.CreateParams
	updated *user.UpdateParams
}

func (f *fakeUserRepo) ListUsers(_ context.Context, _ user.ListFilter) ([]*user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, _ int64) (*user.User, error) {
	return f.stored, nil
}

func (f *fakeUserRepo) CreateUser(_ context.Context, params user.CreateParams) (*user.User, error) {
	f.created = &params
	f.stored = &user.User{ID: 1, Name: params.Name, Email: params.Email, Login: params.Login}

	return f.stored, nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, _ int64, params user.UpdateParams) (*user.User, error) {
	f.updated = &params

	if params.PlanBalanceCents != nil {
		f.stored.PlanBalanceCents = *params.PlanBalanceCents
	}

	if params.Plan != nil {
		f.stored.Plan = *params.Plan
	}

	if params.PlanEnd != nil {
		f.stored.PlanEnd = params.PlanEnd
	}

	return f.stored, nil
}

type fakePlanRepo struct {
	plans map[string]*plan.Plan
}

func (f *fakePlanRepo) ListActivePlans(_ context.Context) ([]*plan.Plan, error) {
	return nil, nil
}

func (f *fakePlanRepo) GetPlanBySlug(_ context.Context, slug string) (*plan.Plan, error) {
	if p, ok := f.plans[slug]; ok {
		return p, nil
	}

	return nil, plan.ErrNotFound
}

func newTestHandler() (*fakeUserRepo, http.Handler) {
	users := &fakeUserRepo{}
	plans := &fakePlanRepo{plans: map[string]*plan.Plan{
		"pro": {ID: 1, Name: "Pro", Slug: "pro", PriceCents: 4990, DurationDays: 30},
	}}

	h := NewHandler(user.NewService(users), plan.NewService(plans))

	r := chi.NewRouter()
	h.Routes(r)

	return users, r
}

func TestCreate_WithInitialPlan(t *testing.T) {
	repo, router := newTestHandler()

	body := `{"name":"Ana","login":"ana","plan_slug":"pro"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, repo.created)
	assert.Equal(t, "ana", repo.created.Login)

	require.NotNil(t, repo.updated)
	require.NotNil(t, repo.updated.PlanBalanceCents)
	assert.Equal(t, int64(4990), *repo.updated.PlanBalanceCents)
	require.NotNil(t, repo.updated.Plan)
	assert.Equal(t, "pro", *repo.updated.Plan)
	require.NotNil(t, repo.updated.PlanEnd)
	assert.True(t, brl.SameDay(*repo.updated.PlanEnd, time.Now().AddDate(0, 0, 30)))

	assert.Contains(t, rec.Body.String(), `"plan":"pro"`)
}

func TestCreate_WithoutPlan(t *testing.T) {
	repo, router := newTestHandler()

	body := `{"name":"Ana","login":"ana"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, repo.created)
	assert.Nil(t, repo.updated)
}

func TestCreate_UnknownPlanRejectedBeforeInsert(t *testing.T) {
	repo, router := newTestHandler()

	body := `{"name":"Ana","login":"ana","plan_slug":"enterprise"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, repo.created)
}
