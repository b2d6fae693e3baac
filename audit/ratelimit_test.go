package audit_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/diraudit"
	"github.com/fwojciec/diraudit/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements diraudit.DomainLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ diraudit.DomainLimiter = audit.NewDirectoryLimiter(1)
	})

	t.Run("allows immediate first request", func(t *testing.T) {
		t.Parallel()

		limiter := audit.NewDirectoryLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "vitals.com")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("spaces requests to the same directory", func(t *testing.T) {
		t.Parallel()

		limiter := audit.NewDirectoryLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "vitals.com"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "vitals.com")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("directories have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := audit.NewDirectoryLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "vitals.com"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "webmd.com")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("hosts of one directory share a limit", func(t *testing.T) {
		t.Parallel()

		limiter := audit.NewDirectoryLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "www.vitals.com"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://vitals.com/doctors")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
		assert.Equal(t, 1, limiter.Directories())
	})

	t.Run("counts distinct directories", func(t *testing.T) {
		t.Parallel()

		limiter := audit.NewDirectoryLimiter(100)
		for _, dir := range []string{"vitals.com", "WWW.Vitals.com", "webmd.com", "doctor.webmd.com"} {
			require.NoError(t, limiter.Wait(context.Background(), dir))
		}

		assert.Equal(t, 2, limiter.Directories())
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := audit.NewDirectoryLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "vitals.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "vitals.com"))
	})

	t.Run("serves concurrent callers", func(t *testing.T) {
		t.Parallel()

		limiter := audit.NewDirectoryLimiter(100)

		var wg sync.WaitGroup
		var completed atomic.Int32
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Wait(context.Background(), "vitals.com") == nil {
					completed.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(5), completed.Load())
	})
}
