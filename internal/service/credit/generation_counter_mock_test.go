package credit

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
	"sync"
)

var _ generationCounter = &generationCounterMock{}

type generationCounterMock struct {
	CountInPeriodFunc func(ctx context.Context, userID uuid.UUID, period domain.Period) (domain.GenerationCounts, error)

	calls struct {
		CountInPeriod []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Period domain.Period
		}
	}
	lockCountInPeriod sync.RWMutex
}

func (mock *generationCounterMock) CountInPeriod(ctx context.Context, userID uuid.UUID, period domain.Period) (domain.GenerationCounts, error) {
	if mock.CountInPeriodFunc == nil {
		panic("generationCounterMock.CountInPeriodFunc: method is nil but generationCounter.CountInPeriod was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Period domain.Period
	}{Ctx: ctx, UserID: userID, Period: period}
	mock.lockCountInPeriod.Lock()
	mock.calls.CountInPeriod = append(mock.calls.CountInPeriod, callInfo)
	mock.lockCountInPeriod.Unlock()
	return mock.CountInPeriodFunc(ctx, userID, period)
}

func (mock *generationCounterMock) CountInPeriodCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Period domain.Period
} {
	mock.lockCountInPeriod.RLock()
	calls := mock.calls.CountInPeriod
	mock.lockCountInPeriod.RUnlock()
	return calls
}
