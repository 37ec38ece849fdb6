package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/database"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/queue"
)

type MockLeadRepo struct {
	mock.Mock
}

func (m *MockLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepo) Update(ctx context.Context, id int64, apply func(entity.Lead) (entity.Lead, error)) (*entity.Lead, error) {
	args := m.Called(ctx, id, apply)
	lead, _ := args.Get(0).(*entity.Lead)
	return lead, args.Error(1)
}

func (m *MockLeadRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepo) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	lead, _ := args.Get(0).(*entity.Lead)
	return lead, args.Error(1)
}

func (m *MockLeadRepo) FindAll(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	leads, _ := args.Get(0).([]entity.Lead)
	return leads, args.Error(1)
}

func (m *MockLeadRepo) Search(ctx context.Context, term string) ([]entity.Lead, error) {
	args := m.Called(ctx, term)
	leads, _ := args.Get(0).([]entity.Lead)
	return leads, args.Error(1)
}

func (m *MockLeadRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishLeadEvent(ctx context.Context, event queue.LeadEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func createInput() CreateLeadInput {
	return CreateLeadInput{Name: " Ana ", Email: "ana@x.com", Phone: "11999", Position: "CTO"}
}

func TestCreateLeadPublishesEvent(t *testing.T) {
	repo := new(MockLeadRepo)
	pub := new(MockPublisher)
	uc := NewLeadUseCase(repo, pub, nil)

	repo.On("EmailExists", mock.Anything, "ana@x.com", int64(0)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Lead")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Lead).ID = 42
		}).
		Return(nil)
	pub.On("PublishLeadEvent", mock.Anything, mock.MatchedBy(func(e queue.LeadEvent) bool {
		return e.Type == queue.EventLeadCreated && e.LeadID == 42 && e.Lead.Name == "Ana"
	})).Return(nil)

	lead, err := uc.Create(context.Background(), createInput())

	require.NoError(t, err)
	assert.Equal(t, int64(42), lead.ID)
	assert.Equal(t, "Ana", lead.Name)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCreateLeadPublishFailureDoesNotFail(t *testing.T) {
	repo := new(MockLeadRepo)
	pub := new(MockPublisher)
	uc := NewLeadUseCase(repo, pub, nil)

	repo.On("EmailExists", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	pub.On("PublishLeadEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := uc.Create(context.Background(), createInput())

	assert.NoError(t, err)
}

func TestCreateLeadInvalidSkipsStore(t *testing.T) {
	repo := new(MockLeadRepo)
	uc := NewLeadUseCase(repo, nil, nil)

	_, err := uc.Create(context.Background(), CreateLeadInput{Name: "Ana"})

	assert.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "EmailExists", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateLeadDuplicate(t *testing.T) {
	repo := new(MockLeadRepo)
	uc := NewLeadUseCase(repo, nil, nil)
	repo.On("EmailExists", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

	_, err := uc.Create(context.Background(), createInput())

	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ReasonDuplicate, ve.Reason)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLeadRaceCaughtByStore(t *testing.T) {
	repo := new(MockLeadRepo)
	uc := NewLeadUseCase(repo, nil, nil)
	repo.On("EmailExists", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(entity.ErrEmailAlreadyExists)

	_, err := uc.Create(context.Background(), createInput())

	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Email já está em uso", ve.Message)
}

func TestCreateLeadDatabaseError(t *testing.T) {
	repo := new(MockLeadRepo)
	uc := NewLeadUseCase(repo, nil, nil)
	repo.On("EmailExists", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("conn refused"))

	_, err := uc.Create(context.Background(), createInput())

	var te *TechnicalError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "DATABASE_ERROR", te.Code)
}

func TestSearchBlankSkipsStore(t *testing.T) {
	repo := new(MockLeadRepo)
	uc := NewLeadUseCase(repo, nil, nil)

	leads, err := uc.Search(context.Background(), "   ")

	require.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestPageBlankTermListsAll(t *testing.T) {
	repo := new(MockLeadRepo)
	uc := NewLeadUseCase(repo, nil, nil)
	repo.On("FindAll", mock.Anything).Return([]entity.Lead{{ID: 1}, {ID: 2}, {ID: 3}}, nil)

	out, err := uc.Page(context.Background(), "", 2, 2)

	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, int64(3), out.Data[0].ID)
	assert.Equal(t, 2, out.Page)
}

func TestGetParsesTracking(t *testing.T) {
	repo := new(MockLeadRepo)
	uc := NewLeadUseCase(repo, nil, nil)
	repo.On("FindByID", mock.Anything, int64(1)).Return(&entity.Lead{
		ID:      1,
		Message: `Oi Dados de tracking:{"referrer":"direct","timestamp":"2025-10-16T12:00:00Z","sessionId":"s1"}`,
	}, nil)

	out, err := uc.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Oi", out.CleanMessage)
	require.NotNil(t, out.Tracking)
	assert.Equal(t, "direct", out.Tracking.Referrer)
}

func TestGetNotFound(t *testing.T) {
	repo := new(MockLeadRepo)
	uc := NewLeadUseCase(repo, nil, nil)
	repo.On("FindByID", mock.Anything, int64(9)).Return(nil, &entity.NotFoundError{ID: 9})

	_, err := uc.Get(context.Background(), 9)

	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.False(t, IsTechnicalError(err))
}

// Os cenários de update usam o store em memória para exercitar o apply real.
func newMemoryUseCase(t *testing.T) (*LeadUseCase, *database.MemoryLeadRepository) {
	t.Helper()
	repo := database.NewMemoryLeadRepository()
	clock := time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC)
	repo.Now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return NewLeadUseCase(repo, nil, nil), repo
}

func TestUpdateMergesPatch(t *testing.T) {
	ctx := context.Background()
	uc, _ := newMemoryUseCase(t)
	campaign := "outubro"
	input := createInput()
	input.UTMCampaign = &campaign
	created, err := uc.Create(ctx, input)
	require.NoError(t, err)

	phone := "11888"
	updated, err := uc.Update(ctx, created.ID, entity.LeadPatch{
		Phone:       &phone,
		UTMCampaign: entity.OptionalString{Set: true},
	})

	require.NoError(t, err)
	assert.Equal(t, "11888", updated.Phone)
	assert.Equal(t, "Ana", updated.Name)
	assert.Nil(t, updated.UTMCampaign)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateInvalidLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	uc, repo := newMemoryUseCase(t)
	created, err := uc.Create(ctx, createInput())
	require.NoError(t, err)

	blank := " "
	_, err = uc.Update(ctx, created.ID, entity.LeadPatch{Name: &blank})

	assert.True(t, IsValidationError(err))
	stored, _ := repo.FindByID(ctx, created.ID)
	assert.Equal(t, "Ana", stored.Name)
	assert.Equal(t, created.UpdatedAt, stored.UpdatedAt)
}

func TestUpdateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	uc, _ := newMemoryUseCase(t)
	_, err := uc.Create(ctx, createInput())
	require.NoError(t, err)
	other, err := uc.Create(ctx, CreateLeadInput{Name: "Bia", Email: "bia@x.com", Phone: "1", Position: "CEO"})
	require.NoError(t, err)

	email := "ANA@x.com"
	_, err = uc.Update(ctx, other.ID, entity.LeadPatch{Email: &email})

	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ReasonDuplicate, ve.Reason)
}

func TestUpdateMissing(t *testing.T) {
	uc, _ := newMemoryUseCase(t)

	_, err := uc.Update(context.Background(), 123, entity.LeadPatch{})

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestDeletePublishesAndTwiceFails(t *testing.T) {
	ctx := context.Background()
	repo := database.NewMemoryLeadRepository()
	pub := new(MockPublisher)
	uc := NewLeadUseCase(repo, pub, nil)
	pub.On("PublishLeadEvent", mock.Anything, mock.Anything).Return(nil)

	created, err := uc.Create(ctx, createInput())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), entity.ErrNotFound)

	pub.AssertNumberOfCalls(t, "PublishLeadEvent", 2)
	last := pub.Calls[1].Arguments.Get(1).(queue.LeadEvent)
	assert.Equal(t, queue.EventLeadDeleted, last.Type)
	assert.Nil(t, last.Lead)
}

func TestCheckEmail(t *testing.T) {
	ctx := context.Background()
	uc, _ := newMemoryUseCase(t)
	created, err := uc.Create(ctx, createInput())
	require.NoError(t, err)

	assert.NoError(t, uc.CheckEmail(ctx, "nova@x.com", 0))
	assert.NoError(t, uc.CheckEmail(ctx, "ana@x.com", created.ID))

	var ve ValidationError
	require.ErrorAs(t, uc.CheckEmail(ctx, "ana@x.com", 0), &ve)
	assert.Equal(t, ReasonDuplicate, ve.Reason)

	require.ErrorAs(t, uc.CheckEmail(ctx, "", 0), &ve)
	assert.Equal(t, ReasonRequired, ve.Reason)
}
