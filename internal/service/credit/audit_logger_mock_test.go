package credit

import (
	"context"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
	"sync"
)

var _ auditLogger = &auditLoggerMock{}

type auditLoggerMock struct {
	LogFunc func(ctx context.Context, record domain.AuditRecord) error

	calls struct {
		Log []struct {
			Ctx    context.Context
			Record domain.AuditRecord
		}
	}
	lockLog sync.RWMutex
}

func (mock *auditLoggerMock) Log(ctx context.Context, record domain.AuditRecord) error {
	if mock.LogFunc == nil {
		panic("auditLoggerMock.LogFunc: method is nil but auditLogger.Log was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Record domain.AuditRecord
	}{Ctx: ctx, Record: record}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, callInfo)
	mock.lockLog.Unlock()
	return mock.LogFunc(ctx, record)
}

func (mock *auditLoggerMock) LogCalls() []struct {
	Ctx    context.Context
	Record domain.AuditRecord
} {
	mock.lockLog.RLock()
	calls := mock.calls.Log
	mock.lockLog.RUnlock()
	return calls
}
