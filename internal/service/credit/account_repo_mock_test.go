package credit

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
	"sync"
)

var _ accountRepo = &accountRepoMock{}

type accountRepoMock struct {
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByIDForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdateFreeTokensFunc func(ctx context.Context, id uuid.UUID, tokens int) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		UpdateFreeTokens []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Tokens int
		}
	}
	lockGetByID          sync.RWMutex
	lockGetByIDForUpdate sync.RWMutex
	lockUpdateFreeTokens sync.RWMutex
}

func (mock *accountRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if mock.GetByIDFunc == nil {
		panic("accountRepoMock.GetByIDFunc: method is nil but accountRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *accountRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *accountRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("accountRepoMock.GetByIDForUpdateFunc: method is nil but accountRepo.GetByIDForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByIDForUpdate.Lock()
	mock.calls.GetByIDForUpdate = append(mock.calls.GetByIDForUpdate, callInfo)
	mock.lockGetByIDForUpdate.Unlock()
	return mock.GetByIDForUpdateFunc(ctx, id)
}

func (mock *accountRepoMock) GetByIDForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByIDForUpdate.RLock()
	calls := mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *accountRepoMock) UpdateFreeTokens(ctx context.Context, id uuid.UUID, tokens int) error {
	if mock.UpdateFreeTokensFunc == nil {
		panic("accountRepoMock.UpdateFreeTokensFunc: method is nil but accountRepo.UpdateFreeTokens was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		Tokens int
	}{Ctx: ctx, ID: id, Tokens: tokens}
	mock.lockUpdateFreeTokens.Lock()
	mock.calls.UpdateFreeTokens = append(mock.calls.UpdateFreeTokens, callInfo)
	mock.lockUpdateFreeTokens.Unlock()
	return mock.UpdateFreeTokensFunc(ctx, id, tokens)
}

func (mock *accountRepoMock) UpdateFreeTokensCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Tokens int
} {
	mock.lockUpdateFreeTokens.RLock()
	calls := mock.calls.UpdateFreeTokens
	mock.lockUpdateFreeTokens.RUnlock()
	return calls
}
