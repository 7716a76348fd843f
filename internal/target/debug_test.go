package target_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/tminus/internal/storage"
	"github.com/sandeepkv93/tminus/internal/target"
	"github.com/sandeepkv93/tminus/internal/timeutil"
)

func TestDebugInfo(t *testing.T) {
	kv := storage.NewMemory()
	store := target.New(kv, timeutil.NewMockClock(scenarioNow))
	ctx := context.Background()

	info := store.Debug(ctx, time.UTC)
	assert.Equal(t, "Not Set", info.TargetDate)
	assert.Equal(t, "LocalStorage: {\n  \"targetDate\": \"Not Set\"\n}", info.String())

	require.NoError(t, store.Set(ctx, 1748131199999))
	info = store.Debug(ctx, time.UTC)
	assert.Equal(t, "1748131199999 (5/24/2025, 11:59:59 PM)", info.TargetDate)

	require.NoError(t, kv.Write(ctx, target.Key, "1.5e3"))
	assert.Equal(t, "1.5e3 (1/1/1970, 12:00:01 AM)", store.Debug(ctx, time.UTC).TargetDate)

	require.NoError(t, kv.Write(ctx, target.Key, "garbage"))
	assert.Equal(t, "garbage (Invalid Date)", store.Debug(ctx, time.UTC).TargetDate)
}
