package usage

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
	"sync"
	"time"
)

var _ usageRepo = &usageRepoMock{}

type usageRepoMock struct {
	RecordFunc     func(ctx context.Context, u *domain.TokenUsage) error
	TopUsersFunc   func(ctx context.Context, from time.Time, to time.Time, limit int) ([]domain.UserUsage, error)
	TotalsFunc     func(ctx context.Context, from time.Time, to time.Time) (domain.UsageTotals, error)
	UserTotalsFunc func(ctx context.Context, userID uuid.UUID, from time.Time, to time.Time) (domain.UsageTotals, error)

	calls struct {
		Record []struct {
			Ctx context.Context
			U   *domain.TokenUsage
		}
		TopUsers []struct {
			Ctx   context.Context
			From  time.Time
			To    time.Time
			Limit int
		}
		Totals []struct {
			Ctx  context.Context
			From time.Time
			To   time.Time
		}
		UserTotals []struct {
			Ctx    context.Context
			UserID uuid.UUID
			From   time.Time
			To     time.Time
		}
	}
	lockRecord     sync.RWMutex
	lockTopUsers   sync.RWMutex
	lockTotals     sync.RWMutex
	lockUserTotals sync.RWMutex
}

func (mock *usageRepoMock) Record(ctx context.Context, u *domain.TokenUsage) error {
	if mock.RecordFunc == nil {
		panic("usageRepoMock.RecordFunc: method is nil but usageRepo.Record was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.TokenUsage
	}{Ctx: ctx, U: u}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	return mock.RecordFunc(ctx, u)
}

func (mock *usageRepoMock) RecordCalls() []struct {
	Ctx context.Context
	U   *domain.TokenUsage
} {
	mock.lockRecord.RLock()
	calls := mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}

func (mock *usageRepoMock) TopUsers(ctx context.Context, from time.Time, to time.Time, limit int) ([]domain.UserUsage, error) {
	if mock.TopUsersFunc == nil {
		panic("usageRepoMock.TopUsersFunc: method is nil but usageRepo.TopUsers was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		From  time.Time
		To    time.Time
		Limit int
	}{Ctx: ctx, From: from, To: to, Limit: limit}
	mock.lockTopUsers.Lock()
	mock.calls.TopUsers = append(mock.calls.TopUsers, callInfo)
	mock.lockTopUsers.Unlock()
	return mock.TopUsersFunc(ctx, from, to, limit)
}

func (mock *usageRepoMock) TopUsersCalls() []struct {
	Ctx   context.Context
	From  time.Time
	To    time.Time
	Limit int
} {
	mock.lockTopUsers.RLock()
	calls := mock.calls.TopUsers
	mock.lockTopUsers.RUnlock()
	return calls
}

func (mock *usageRepoMock) Totals(ctx context.Context, from time.Time, to time.Time) (domain.UsageTotals, error) {
	if mock.TotalsFunc == nil {
		panic("usageRepoMock.TotalsFunc: method is nil but usageRepo.Totals was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		From time.Time
		To   time.Time
	}{Ctx: ctx, From: from, To: to}
	mock.lockTotals.Lock()
	mock.calls.Totals = append(mock.calls.Totals, callInfo)
	mock.lockTotals.Unlock()
	return mock.TotalsFunc(ctx, from, to)
}

func (mock *usageRepoMock) TotalsCalls() []struct {
	Ctx  context.Context
	From time.Time
	To   time.Time
} {
	mock.lockTotals.RLock()
	calls := mock.calls.Totals
	mock.lockTotals.RUnlock()
	return calls
}

func (mock *usageRepoMock) UserTotals(ctx context.Context, userID uuid.UUID, from time.Time, to time.Time) (domain.UsageTotals, error) {
	if mock.UserTotalsFunc == nil {
		panic("usageRepoMock.UserTotalsFunc: method is nil but usageRepo.UserTotals was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		From   time.Time
		To     time.Time
	}{Ctx: ctx, UserID: userID, From: from, To: to}
	mock.lockUserTotals.Lock()
	mock.calls.UserTotals = append(mock.calls.UserTotals, callInfo)
	mock.lockUserTotals.Unlock()
	return mock.UserTotalsFunc(ctx, userID, from, to)
}

func (mock *usageRepoMock) UserTotalsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	From   time.Time
	To     time.Time
} {
	mock.lockUserTotals.RLock()
	calls := mock.calls.UserTotals
	mock.lockUserTotals.RUnlock()
	return calls
}
