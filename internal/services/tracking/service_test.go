package tracking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BearBump/DVCPortal/internal/cache/lrucache"
	"github.com/BearBump/DVCPortal/internal/codegen"
	"github.com/BearBump/DVCPortal/internal/models"
	"github.com/BearBump/DVCPortal/internal/storage/memstore"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, now time.Time) (*Service, *memstore.TrackingStore) {
	t.Helper()
	gen, err := codegen.New(1)
	require.NoError(t, err)
	gen.WithClock(func() time.Time { return now })
	store := memstore.NewTrackingStore()
	return New(store, gen, lrucache.New(16, time.Minute), time.Minute), store
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "HS2026001234", Normalize(" hs2026001234\n"))
	require.Equal(t, "", Normalize("  "))
}

func TestService_CreateThenGet(t *testing.T) {
	svc, _ := newTestService(t, time.Now())
	ctx := context.Background()

	created, err := svc.Create(ctx, models.TrackingRecord{
		ServiceName: "Đăng ký kết hôn",
		Status:      models.TrackingStatusReceived,
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.Code)
	require.NoError(t, err)
	require.Equal(t, models.TrackingStatusReceived, got.Status)

	// второй раз из кэша, тот же результат
	got, err = svc.Get(ctx, created.Code)
	require.NoError(t, err)
	require.Equal(t, created.Code, got.Code)
}

func TestService_SeedCodesNeverIssued(t *testing.T) {
	// часы подобраны так, что первый кандидат совпадает с демо-кодом HS2026001234
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	shift := (1233 - base.UnixMilli()%1_000_000 + 1_000_000) % 1_000_000
	now := base.Add(time.Duration(shift) * time.Millisecond)
	svc, store := newTestService(t, now)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.TrackingRecord{ServiceName: "X"})
	require.NoError(t, err)
	require.NotEqual(t, "HS2026001234", created.Code)

	seed, err := svc.Get(ctx, "HS2026001234")
	require.NoError(t, err)
	require.Equal(t, "Cấp Căn cước công dân gắn chip lần đầu", seed.ServiceName)

	n, _ := store.CountRecords(ctx)
	require.Equal(t, 1, n)
}

func TestService_ConcurrentCreateUniqueCodes(t *testing.T) {
	svc, store := newTestService(t, time.Now())
	ctx := context.Background()

	const n = 100
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes = make(map[string]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := svc.Create(ctx, models.TrackingRecord{ServiceName: "X"})
			require.NoError(t, err)
			mu.Lock()
			codes[r.Code] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, codes, n)
	cnt, _ := store.CountRecords(ctx)
	require.Equal(t, n, cnt)
}
