package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/secondwind/internal/clock"
	"github.com/julianstephens/secondwind/internal/models"
	"github.com/julianstephens/secondwind/internal/storage"
)

// TestIntegrationSnapshotRestoreWorkflow runs the full snapshot/restore cycle
// against a real store populated through the persistence gateway.
func TestIntegrationSnapshotRestoreWorkflow(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "secondwind.db")

	clk := &clock.Fixed{Time: time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)}

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	gw := storage.NewGateway(store, clk)
	gw.SaveTasks([]models.Task{{ID: "t1", Title: "Write report", CreatedAt: clk.Now()}})
	gw.SaveHabits([]models.Habit{{ID: "h1", Title: "Meditate", IsActive: true, CreatedAt: clk.Now()}})
	store.Close()

	mgr := NewManager(dbPath)
	snapshotPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("failed to create snapshot: %v", err)
	}

	// Mutate the store after the snapshot.
	store = storage.NewSQLiteStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	gw = storage.NewGateway(store, clk)
	gw.SaveTasks([]models.Task{
		{ID: "t1", Title: "Write report", CreatedAt: clk.Now()},
		{ID: "t2", Title: "Book flights", CreatedAt: clk.Now()},
	})
	if tasks := gw.LoadTasks(); len(tasks) != 2 {
		t.Fatalf("expected 2 tasks before restore, got %d", len(tasks))
	}
	store.Close()

	if err := mgr.Restore(snapshotPath); err != nil {
		t.Fatalf("failed to restore snapshot: %v", err)
	}

	// The restored store carries the pre-mutation data.
	store = storage.NewSQLiteStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load restored store: %v", err)
	}
	defer store.Close()
	gw = storage.NewGateway(store, clk)

	tasks := gw.LoadTasks()
	if len(tasks) != 1 || tasks[0].Title != "Write report" {
		t.Errorf("unexpected tasks after restore: %+v", tasks)
	}
	habits := gw.LoadHabits()
	if len(habits) != 1 || habits[0].Title != "Meditate" {
		t.Errorf("unexpected habits after restore: %+v", habits)
	}

	// The restore itself snapshots the pre-restore state.
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("expected at least 2 backups after restore, got %d", len(backups))
	}
}

// TestBackupDirectoryCreation tests that the backup directory is created on demand.
func TestBackupDirectoryCreation(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)

	os.RemoveAll(mgr.BackupDir())

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := os.Stat(mgr.BackupDir()); os.IsNotExist(err) {
		t.Error("backup directory was not created")
	}
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Error("backup file was not created")
	}
}
