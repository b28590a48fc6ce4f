package account

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
	"sync"
)

var _ accountRepo = &accountRepoMock{}

type accountRepoMock struct {
	GetByEmailFunc       func(ctx context.Context, email string) (*domain.Account, error)
	GetByIDForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdateRoleFunc       func(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.Account, error)

	calls struct {
		GetByEmail []struct {
			Ctx   context.Context
			Email string
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		UpdateRole []struct {
			Ctx  context.Context
			ID   uuid.UUID
			Role domain.UserRole
		}
	}
	lockGetByEmail       sync.RWMutex
	lockGetByIDForUpdate sync.RWMutex
	lockUpdateRole       sync.RWMutex
}

func (mock *accountRepoMock) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if mock.GetByEmailFunc == nil {
		panic("accountRepoMock.GetByEmailFunc: method is nil but accountRepo.GetByEmail was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{Ctx: ctx, Email: email}
	mock.lockGetByEmail.Lock()
	mock.calls.GetByEmail = append(mock.calls.GetByEmail, callInfo)
	mock.lockGetByEmail.Unlock()
	return mock.GetByEmailFunc(ctx, email)
}

func (mock *accountRepoMock) GetByEmailCalls() []struct {
	Ctx   context.Context
	Email string
} {
	mock.lockGetByEmail.RLock()
	calls := mock.calls.GetByEmail
	mock.lockGetByEmail.RUnlock()
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

func (mock *accountRepoMock) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.Account, error) {
	if mock.UpdateRoleFunc == nil {
		panic("accountRepoMock.UpdateRoleFunc: method is nil but accountRepo.UpdateRole was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		ID   uuid.UUID
		Role domain.UserRole
	}{Ctx: ctx, ID: id, Role: role}
	mock.lockUpdateRole.Lock()
	mock.calls.UpdateRole = append(mock.calls.UpdateRole, callInfo)
	mock.lockUpdateRole.Unlock()
	return mock.UpdateRoleFunc(ctx, id, role)
}

func (mock *accountRepoMock) UpdateRoleCalls() []struct {
	Ctx  context.Context
	ID   uuid.UUID
	Role domain.UserRole
} {
	mock.lockUpdateRole.RLock()
	calls := mock.calls.UpdateRole
	mock.lockUpdateRole.RUnlock()
	return calls
}
