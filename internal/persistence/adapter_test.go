package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskman/internal/domain"
	"taskman/internal/errors"
	"taskman/internal/storage"
)

func newTestAdapter(t *testing.T) (*Adapter, *storage.Memory) {
	t.Helper()
	substrate := storage.NewMemory()
	adapter := New(context.Background(), substrate, nil)
	require.True(t, adapter.Available())
	return adapter, substrate
}

func sampleSnapshot() domain.Snapshot {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	completed := created.Add(time.Hour)
	return domain.Snapshot{
		Tasks: []domain.Task{
			{ID: 1, Title: "A", Priority: "high", Status: domain.StatusCompleted, CreatedAt: created, CompletedAt: &completed},
			{ID: 2, Title: "B", Description: "second", Priority: "medium", Status: domain.StatusPending, CreatedAt: created},
		},
		NextID: 3,
	}
}

func TestAdapter_Probe(t *testing.T) {
	t.Run("available substrate probes clean", func(t *testing.T) {
		substrate := storage.NewMemory()

		adapter := New(context.Background(), substrate, nil)

		assert.True(t, adapter.Available())
		// The probe must not leave its throwaway key behind.
		assert.Equal(t, 0, substrate.Len())
	})

	t.Run("failing substrate is cached as unavailable", func(t *testing.T) {
		substrate := storage.NewMemory()
		substrate.Fail = true

		adapter := New(context.Background(), substrate, nil)
		assert.False(t, adapter.Available())

		// Availability is probed once; recovery after construction is
		// not observed.
		substrate.Fail = false
		assert.False(t, adapter.Available())
		err := adapter.Save(context.Background(), sampleSnapshot())
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnavailable))
	})
}

func TestAdapter_SaveLoadRoundTrip(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()
	snapshot := sampleSnapshot()

	require.NoError(t, adapter.Save(ctx, snapshot))

	loaded, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Tasks, loaded.Tasks)
	assert.Equal(t, snapshot.NextID, loaded.NextID)
	require.NotNil(t, loaded.LastSaved)
}

func TestAdapter_Save_EmptySnapshotHasTasksArray(t *testing.T) {
	adapter, substrate := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Save(ctx, domain.Snapshot{NextID: 1}))

	// The persisted blob carries [] rather than null for the empty list.
	payload, err := substrate.Get(ctx, adapter.Key())
	require.NoError(t, err)
	assert.Contains(t, payload, `"tasks":[]`)
}

func TestAdapter_Load_ErrorsAreDistinguishable(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key is not found", func(t *testing.T) {
		adapter, _ := newTestAdapter(t)

		_, err := adapter.Load(ctx)

		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("undecodable payload is corrupt", func(t *testing.T) {
		adapter, substrate := newTestAdapter(t)
		require.NoError(t, substrate.Set(ctx, adapter.Key(), "{not json"))

		_, err := adapter.Load(ctx)

		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeCorrupt))
	})

	t.Run("unavailable substrate is unavailable", func(t *testing.T) {
		substrate := storage.NewMemory()
		substrate.Fail = true
		adapter := New(ctx, substrate, nil)

		_, err := adapter.Load(ctx)

		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnavailable))
	})
}

func TestAdapter_Save_CapacityExceeded(t *testing.T) {
	substrate := storage.NewMemory()
	substrate.Capacity = 64
	adapter := New(context.Background(), substrate, nil)
	require.True(t, adapter.Available())

	err := adapter.Save(context.Background(), sampleSnapshot())

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeCapacity))
}

func TestAdapter_Clear(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Save(ctx, sampleSnapshot()))
	require.NoError(t, adapter.Clear(ctx))

	_, err := adapter.Load(ctx)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestAdapter_Export(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	var buf bytes.Buffer
	require.NoError(t, adapter.Export(&buf, sampleSnapshot()))

	// The export must be pretty-printed with two-space indentation.
	assert.Contains(t, buf.String(), "\n  \"tasks\": [")

	var envelope ExportEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &envelope))
	assert.Len(t, envelope.Tasks, 2)
	assert.Equal(t, int64(3), envelope.NextID)
	assert.Equal(t, FormatVersion, envelope.Version)
	assert.False(t, envelope.ExportedAt.IsZero())
}

func TestAdapter_Export_EmptySnapshotHasTasksArray(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	var buf bytes.Buffer
	require.NoError(t, adapter.Export(&buf, domain.Snapshot{NextID: 1}))

	// An empty list exports as [] rather than null.
	assert.Contains(t, buf.String(), "\"tasks\": []")
}

func TestAdapter_Import(t *testing.T) {
	tests := []struct {
		name           string
		payload        string
		wantTasks      int
		wantNextID     int64
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:       "accepts export envelope shape",
			payload:    `{"tasks":[{"id":1,"title":"A","priority":"high","status":"pending","createdAt":"2024-03-01T09:00:00Z"}],"nextId":2,"exportedAt":"2024-03-01T10:00:00Z","version":"1.0.0"}`,
			wantTasks:  1,
			wantNextID: 2,
		},
		{
			name:       "accepts bare snapshot shape",
			payload:    `{"tasks":[{"id":1,"title":"A","priority":"low","status":"pending","createdAt":"2024-03-01T09:00:00Z"}],"nextId":2}`,
			wantTasks:  1,
			wantNextID: 2,
		},
		{
			name:       "derives counter when missing",
			payload:    `{"tasks":[{"id":7,"title":"A","priority":"low","status":"pending","createdAt":"2024-03-01T09:00:00Z"}]}`,
			wantTasks:  1,
			wantNextID: 8,
		},
		{
			name:    "rejects malformed json as corrupt",
			payload: `{"tasks": [`,
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeCorrupt))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			adapter, _ := newTestAdapter(t)

			// Act
			snapshot, err := adapter.Import(bytes.NewReader([]byte(tt.payload)))

			// Assert
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, snapshot.Tasks, tt.wantTasks)
				assert.Equal(t, tt.wantNextID, snapshot.NextID)
			}
		})
	}
}

func TestAdapter_ExportImportFiles(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	path := filepath.Join(t.TempDir(), "export.json")
	snapshot := sampleSnapshot()

	require.NoError(t, adapter.ExportToFile(path, snapshot))

	imported, err := adapter.ImportFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Tasks, imported.Tasks)
	assert.Equal(t, snapshot.NextID, imported.NextID)
}

func TestAdapter_ImportFromFile_MissingFile(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	_, err := adapter.ImportFromFile(filepath.Join(t.TempDir(), "absent.json"))

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))
}

func TestAdapter_BackupRestore(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()
	snapshot := sampleSnapshot()

	require.NoError(t, adapter.Save(ctx, snapshot))

	backup, err := adapter.CreateBackup(ctx)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, backup.Version)
	assert.False(t, backup.Timestamp.IsZero())
	assert.Len(t, backup.Data.Tasks, 2)

	// Restore must reproduce the saved state even after an intervening
	// clear.
	require.NoError(t, adapter.Clear(ctx))
	require.NoError(t, adapter.RestoreFromBackup(ctx, backup))

	loaded, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Tasks, loaded.Tasks)
	assert.Equal(t, snapshot.NextID, loaded.NextID)
}

func TestAdapter_CreateBackup_NothingStored(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	_, err := adapter.CreateBackup(context.Background())

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestAdapter_RestoreFromBackup_RejectsEmptyBackup(t *testing.T) {
	adapter, substrate := newTestAdapter(t)
	ctx := context.Background()

	err := adapter.RestoreFromBackup(ctx, Backup{Timestamp: time.Now(), Version: FormatVersion})

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	// Storage must not have been touched.
	assert.Equal(t, 0, substrate.Len())
}

func TestAdapter_StorageInfo(t *testing.T) {
	t.Run("reports size against declared capacity", func(t *testing.T) {
		substrate := storage.NewMemory()
		substrate.Capacity = 10000
		adapter := New(context.Background(), substrate, nil)
		ctx := context.Background()
		require.NoError(t, adapter.Save(ctx, sampleSnapshot()))

		info := adapter.StorageInfo(ctx)

		assert.True(t, info.Available)
		assert.Greater(t, info.DataSize, 0)
		assert.Equal(t, 10000, info.TotalCapacity)
		assert.Greater(t, info.UsagePercentage, 0.0)

		// The query must not write probe data into the substrate.
		assert.Equal(t, 1, substrate.Len())
	})

	t.Run("empty storage reports zero size", func(t *testing.T) {
		adapter, _ := newTestAdapter(t)

		info := adapter.StorageInfo(context.Background())

		assert.True(t, info.Available)
		assert.Equal(t, 0, info.DataSize)
	})

	t.Run("unavailable substrate reports unavailable", func(t *testing.T) {
		substrate := storage.NewMemory()
		substrate.Fail = true
		adapter := New(context.Background(), substrate, nil)

		info := adapter.StorageInfo(context.Background())

		assert.False(t, info.Available)
		assert.Equal(t, 0, info.DataSize)
	})
}
