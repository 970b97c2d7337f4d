package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corenumerator "volentia/internal/core/numerator"
	"volentia/internal/infrastructure/storage/postgres"
)

type fakeRow struct {
	val int64
	err error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = r.val
		}
	}
	return nil
}

// fakeQuerier simulates the sys_sequences upsert: each call advances the
// counter by the increment argument (1 for strict).
type fakeQuerier struct {
	mu      sync.Mutex
	current int64
	calls   int
}

func (q *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	panic("not used")
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not used")
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls++

	var increment int64 = 1
	if len(args) == 2 {
		if v, ok := args[1].(int64); ok {
			increment = v
		}
	}
	q.current += increment
	return &fakeRow{val: q.current}
}

type fakeSource struct {
	querier *fakeQuerier
}

func (s *fakeSource) GetQuerier(ctx context.Context) postgres.Querier {
	return s.querier
}

var fixedPeriod = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

func TestGetNextNumber_Strict(t *testing.T) {
	src := &fakeSource{querier: &fakeQuerier{}}
	svc := New(src)
	cfg := corenumerator.DefaultConfig("PRE")

	num, err := svc.GetNextNumber(context.Background(), cfg, nil, fixedPeriod)
	require.NoError(t, err)
	assert.Equal(t, "PRE-2026-00001", num)

	num, err = svc.GetNextNumber(context.Background(), cfg, nil, fixedPeriod)
	require.NoError(t, err)
	assert.Equal(t, "PRE-2026-00002", num)

	// Strict hits the database on every call.
	assert.Equal(t, 2, src.querier.calls)
}

func TestGetNextNumber_Cached(t *testing.T) {
	src := &fakeSource{querier: &fakeQuerier{}}
	svc := New(src)
	cfg := corenumerator.DefaultConfig("PRE")
	opts := &corenumerator.Options{Strategy: corenumerator.StrategyCached, RangeSize: 10}

	for i := 1; i <= 10; i++ {
		num, err := svc.GetNextNumber(context.Background(), cfg, opts, fixedPeriod)
		require.NoError(t, err)
		assert.Equal(t, svc.formatNumber(cfg, fixedPeriod, int64(i)), num)
	}

	// Ten numbers served from a single reserved range.
	assert.Equal(t, 1, src.querier.calls)

	// The eleventh reserves a second range.
	num, err := svc.GetNextNumber(context.Background(), cfg, opts, fixedPeriod)
	require.NoError(t, err)
	assert.Equal(t, "PRE-2026-00011", num)
	assert.Equal(t, 2, src.querier.calls)
}

func TestFormatNumber(t *testing.T) {
	svc := New(&fakeSource{querier: &fakeQuerier{}})

	cfg := corenumerator.DefaultConfig("PRE")
	assert.Equal(t, "PRE-2026-00042", svc.formatNumber(cfg, fixedPeriod, 42))

	cfg.IncludeYear = false
	cfg.PadWidth = 3
	assert.Equal(t, "PRE-042", svc.formatNumber(cfg, fixedPeriod, 42))
}

func TestBuildKey(t *testing.T) {
	svc := New(&fakeSource{querier: &fakeQuerier{}})

	cfg := corenumerator.DefaultConfig("PRE")
	assert.Equal(t, "PRE_2026", svc.buildKey(cfg, fixedPeriod))

	cfg.ResetPeriod = "month"
	assert.Equal(t, "PRE_2026_03", svc.buildKey(cfg, fixedPeriod))

	cfg.ResetPeriod = "never"
	assert.Equal(t, "PRE", svc.buildKey(cfg, fixedPeriod))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, int64(42), ParseNumber("PRE-2026-00042"))
	assert.Equal(t, int64(7), ParseNumber("PRE-00007"))
	assert.Equal(t, int64(-1), ParseNumber("garbage"))
}
