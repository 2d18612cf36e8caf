package credits

import (
	"sync"
	"testing"
	"time"

	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/logger"
)

// testClock is a TimeProvider whose current instant tests can move forward.
// It is safe for concurrent use so concurrency tests run clean under -race.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// newTestService wires a Service against an isolated in-memory store.
// The returned clock drives every timestamp the service writes.
func newTestService(t *testing.T, config Config) (*Service, *testClock) {
	t.Helper()

	conn := database.NewTestConnection(t)
	clock := newTestClock()
	uow := database.NewUnitOfWork(conn.DB, logger.NewNoopLogger())

	return NewService(uow, clock, logger.NewNoopLogger(), config), clock
}

func defaultTestConfig() Config {
	return Config{
		RegistrationBonusAmount:       100,
		RegistrationBonusValidityDays: 0,
	}
}

func daysFromNow(clock *testClock, days int) *time.Time {
	expiry := clock.Now().AddDate(0, 0, days)
	return &expiry
}
