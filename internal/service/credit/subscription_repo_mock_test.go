package credit

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
	"sync"
)

var _ subscriptionRepo = &subscriptionRepoMock{}

type subscriptionRepoMock struct {
	GetActiveByUserFunc func(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)

	calls struct {
		GetActiveByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockGetActiveByUser sync.RWMutex
}

func (mock *subscriptionRepoMock) GetActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	if mock.GetActiveByUserFunc == nil {
		panic("subscriptionRepoMock.GetActiveByUserFunc: method is nil but subscriptionRepo.GetActiveByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGetActiveByUser.Lock()
	mock.calls.GetActiveByUser = append(mock.calls.GetActiveByUser, callInfo)
	mock.lockGetActiveByUser.Unlock()
	return mock.GetActiveByUserFunc(ctx, userID)
}

func (mock *subscriptionRepoMock) GetActiveByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGetActiveByUser.RLock()
	calls := mock.calls.GetActiveByUser
	mock.lockGetActiveByUser.RUnlock()
	return calls
}
