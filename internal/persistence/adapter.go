package persistence

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"taskman/internal/domain"
	"taskman/internal/errors"
	"taskman/internal/storage"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

const (
	// DefaultStorageKey is the substrate key the snapshot lives under.
	DefaultStorageKey = "taskManagerData"

	// DefaultExportFilename is used when no export path is given.
	DefaultExportFilename = "task-manager-backup.json"

	// probeSuffix is appended to the storage key to form the throwaway
	// key used by the availability probe.
	probeSuffix = ".probe"
)

// capacityReporter is implemented by substrates that declare a fixed
// per-value capacity ceiling.
type capacityReporter interface {
	MaxValueBytes() int
}

// Adapter persists task snapshots as a single JSON blob under one
// substrate key. Substrate availability is probed once at construction
// and cached for the adapter's lifetime. All substrate failures carry a
// type (not found, corrupt, unavailable, capacity) so callers can react
// differently to each.
type Adapter struct {
	substrate storage.Substrate
	key       string
	available bool
	logger    *zap.Logger
}

// New creates an adapter over the substrate using the default storage key.
func New(ctx context.Context, substrate storage.Substrate, logger *zap.Logger) *Adapter {
	return NewWithKey(ctx, substrate, DefaultStorageKey, logger)
}

// NewWithKey creates an adapter that stores the snapshot under key.
// Availability is established by a throwaway write/remove pair on a probe
// key; the result is not re-checked on later calls.
func NewWithKey(ctx context.Context, substrate storage.Substrate, key string, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Adapter{
		substrate: substrate,
		key:       key,
		logger:    logger,
	}
	a.available = a.probe(ctx)
	if !a.available {
		a.logger.Warn("storage substrate is not available; saves will fail",
			zap.String("key", a.key))
	}
	return a
}

// Available reports the cached result of the construction-time probe.
func (a *Adapter) Available() bool {
	return a.available
}

// Key returns the substrate key the snapshot is stored under.
func (a *Adapter) Key() string {
	return a.key
}

// probe attempts a throwaway write and remove to establish availability.
func (a *Adapter) probe(ctx context.Context) bool {
	probeKey := a.key + probeSuffix
	if err := a.substrate.Set(ctx, probeKey, "probe"); err != nil {
		return false
	}
	if err := a.substrate.Remove(ctx, probeKey); err != nil {
		return false
	}
	return true
}

// Save serializes the snapshot and writes it under the configured key,
// stamping the save time. Failures are logged and returned as typed
// errors; a full substrate yields a capacity error rather than a generic
// failure.
func (a *Adapter) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if !a.available {
		return errors.NewUnavailableError("save")
	}

	now := timeNow()
	snapshot.LastSaved = &now
	// An empty list persists as [] rather than null.
	if snapshot.Tasks == nil {
		snapshot.Tasks = []domain.Task{}
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		a.logger.Error("failed to serialize snapshot", zap.Error(err))
		return errors.NewStorageError("serialize snapshot", err)
	}

	if err := a.substrate.Set(ctx, a.key, string(payload)); err != nil {
		a.logger.Error("failed to write snapshot",
			zap.String("key", a.key),
			zap.Int("bytes", len(payload)),
			zap.Error(err))
		return err
	}

	a.logger.Debug("snapshot saved",
		zap.String("key", a.key),
		zap.Int("bytes", len(payload)),
		zap.Int("tasks", len(snapshot.Tasks)))
	return nil
}

// Load reads and deserializes the stored snapshot, backfilling fields
// older snapshots lack. A missing key, corrupt payload, and unavailable
// substrate are three distinct error types.
func (a *Adapter) Load(ctx context.Context) (domain.Snapshot, error) {
	if !a.available {
		return domain.Snapshot{}, errors.NewUnavailableError("load")
	}

	payload, err := a.substrate.Get(ctx, a.key)
	if err != nil {
		if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			a.logger.Error("failed to read snapshot", zap.String("key", a.key), zap.Error(err))
		}
		return domain.Snapshot{}, err
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		a.logger.Error("stored snapshot is corrupt", zap.String("key", a.key), zap.Error(err))
		return domain.Snapshot{}, errors.NewCorruptDataError(a.key, err)
	}

	return migrateSnapshot(snapshot), nil
}

// Clear removes the stored snapshot.
func (a *Adapter) Clear(ctx context.Context) error {
	if !a.available {
		return errors.NewUnavailableError("clear")
	}
	if err := a.substrate.Remove(ctx, a.key); err != nil {
		a.logger.Error("failed to clear snapshot", zap.String("key", a.key), zap.Error(err))
		return err
	}
	return nil
}

// Export writes the snapshot to w as pretty-printed JSON in the export
// envelope shape. Export does not touch the substrate.
func (a *Adapter) Export(w io.Writer, snapshot domain.Snapshot) error {
	envelope := ExportEnvelope{
		Tasks:      snapshot.Tasks,
		NextID:     snapshot.NextID,
		ExportedAt: timeNow(),
		Version:    FormatVersion,
	}
	if envelope.Tasks == nil {
		envelope.Tasks = []domain.Task{}
	}

	payload, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return errors.NewStorageError("serialize export", err)
	}
	if _, err := w.Write(append(payload, '\n')); err != nil {
		return errors.NewStorageError("write export", err)
	}
	return nil
}

// ExportToFile writes the snapshot to the given path, falling back to the
// default filename when path is empty.
func (a *Adapter) ExportToFile(path string, snapshot domain.Snapshot) error {
	if path == "" {
		path = DefaultExportFilename
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("create export file", err)
	}
	defer f.Close()

	if err := a.Export(f, snapshot); err != nil {
		return err
	}

	a.logger.Info("exported snapshot", zap.String("file", path), zap.Int("tasks", len(snapshot.Tasks)))
	return nil
}

// Import reads a snapshot from r. It accepts both the export envelope and
// the bare persisted shape; unreadable input is a corrupt-data error, not
// a panic or a silent nil.
func (a *Adapter) Import(r io.Reader) (domain.Snapshot, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return domain.Snapshot{}, errors.NewStorageError("read import", err)
	}

	// Both accepted shapes carry tasks and nextId; the envelope's extra
	// fields are simply ignored here.
	var snapshot domain.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return domain.Snapshot{}, errors.NewCorruptDataError("import", err)
	}

	return migrateSnapshot(snapshot), nil
}

// ImportFromFile reads a snapshot from the file at path.
func (a *Adapter) ImportFromFile(path string) (domain.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Snapshot{}, errors.NewStorageError("open import file", err)
	}
	defer f.Close()

	return a.Import(f)
}

// CreateBackup wraps the currently stored snapshot in a backup object.
// It fails with a not-found error when nothing is stored.
func (a *Adapter) CreateBackup(ctx context.Context) (Backup, error) {
	snapshot, err := a.Load(ctx)
	if err != nil {
		return Backup{}, err
	}
	return Backup{
		Timestamp: timeNow(),
		Version:   FormatVersion,
		Data:      snapshot,
	}, nil
}

// RestoreFromBackup writes the backup's snapshot to storage. A backup
// without data is rejected without mutating storage.
func (a *Adapter) RestoreFromBackup(ctx context.Context, backup Backup) error {
	if !backup.HasData() {
		return errors.NewInvalidInputError("backup", nil, "backup contains no data")
	}
	return a.Save(ctx, backup.Data)
}

// StorageInfo measures the stored payload against the substrate's
// declared capacity.
func (a *Adapter) StorageInfo(ctx context.Context) Info {
	info := Info{Available: a.available}
	if !a.available {
		return info
	}

	payload, err := a.substrate.Get(ctx, a.key)
	if err == nil {
		info.DataSize = len(payload)
	}

	if reporter, ok := a.substrate.(capacityReporter); ok {
		info.TotalCapacity = reporter.MaxValueBytes()
	}
	if info.TotalCapacity > 0 {
		pct := float64(info.DataSize) / float64(info.TotalCapacity) * 100
		info.UsagePercentage = math.Round(pct*100) / 100
	}
	return info
}
