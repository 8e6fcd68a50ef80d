package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/secondwind/internal/storage"
)

func setupTestDB(t *testing.T) string {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "secondwind.db")

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := store.Set("tasks", `[{"id":"t1","title":"Write report"}]`); err != nil {
		t.Fatalf("failed to seed test data: %v", err)
	}
	if err := store.Set("habits", `[{"id":"h1","title":"Meditate"}]`); err != nil {
		t.Fatalf("failed to seed test data: %v", err)
	}
	store.Close()

	return dbPath
}

func setupTestJSON(t *testing.T) string {
	tempDir := t.TempDir()
	jsonPath := filepath.Join(tempDir, "secondwind.json")

	store := storage.NewFileStore(jsonPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	if err := store.Set("tasks", `[{"id":"t1","title":"Write report"}]`); err != nil {
		t.Fatalf("failed to seed test data: %v", err)
	}
	store.Close()

	return jsonPath
}

func readValue(t *testing.T, path, key string) (string, bool) {
	t.Helper()
	var store storage.KeyValue
	if filepath.Ext(path) == ".json" {
		store = storage.NewFileStore(path)
	} else {
		store = storage.NewSQLiteStore(path)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store %s: %v", path, err)
	}
	defer store.Close()

	value, found, err := store.Get(key)
	if err != nil {
		t.Fatalf("failed to read %q from %s: %v", key, path, err)
	}
	return value, found
}

func TestCreateSnapshot(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Errorf("backup file was not created: %s", backupPath)
	}

	// The snapshot must be a readable store with the seeded keys intact.
	if value, found := readValue(t, backupPath, "tasks"); !found || value == "" {
		t.Errorf("tasks key missing from snapshot")
	}
	if _, found := readValue(t, backupPath, "habits"); !found {
		t.Errorf("habits key missing from snapshot")
	}
}

func TestCreateSnapshotJSONStore(t *testing.T) {
	jsonPath := setupTestJSON(t)

	mgr := NewManager(jsonPath)
	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("snapshot should keep the source extension, got %s", backupPath)
	}
	if value, found := readValue(t, backupPath, "tasks"); !found || value == "" {
		t.Errorf("tasks key missing from snapshot")
	}
}

func TestCreateFailsWithoutStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Errorf("Create should fail when the storage file does not exist")
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)

	numBackups := MaxBackups + 5
	for i := 0; i < numBackups; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		// Sleep briefly to ensure unique timestamps
		time.Sleep(10 * time.Millisecond)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(backups) != MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", MaxBackups, len(backups))
	}

	// Verify backups are sorted newest first
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted correctly: backup %d is newer than backup %d", i, i-1)
		}
	}
}

func TestList(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	numBackups := 3
	for i := 0; i < numBackups; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(backups) != numBackups {
		t.Errorf("expected %d backups, got %d", numBackups, len(backups))
	}

	for _, backup := range backups {
		if backup.Path == "" {
			t.Error("backup path is empty")
		}
		if backup.Size == 0 {
			t.Error("backup size is 0")
		}
		if backup.Timestamp.IsZero() {
			t.Error("backup timestamp is zero")
		}
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Modify the store after the snapshot.
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	if err := store.Set("tasks", `[]`); err != nil {
		t.Fatalf("failed to modify store: %v", err)
	}
	store.Close()

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	value, found := readValue(t, dbPath, "tasks")
	if !found || value != `[{"id":"t1","title":"Write report"}]` {
		t.Errorf("expected restored tasks value, got %q (found=%v)", value, found)
	}
}

func TestRestoreSnapshotsCurrentStateFirst(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	initialCount := len(backups)

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(backups) != initialCount+1 {
		t.Errorf("expected %d backups after restore, got %d", initialCount+1, len(backups))
	}
}

func TestRestoreRejectsCorruptSnapshot(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	if _, err := mgr.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	invalidPath := filepath.Join(mgr.BackupDir(), "invalid.db")
	if err := os.WriteFile(invalidPath, []byte("not a database"), 0600); err != nil {
		t.Fatalf("failed to create invalid file: %v", err)
	}

	if err := mgr.Restore(invalidPath); err == nil {
		t.Error("Restore should reject a corrupt snapshot")
	}

	// The original store must be untouched.
	if _, found := readValue(t, dbPath, "tasks"); !found {
		t.Errorf("original store damaged by rejected restore")
	}
}

func TestUniqueSnapshotFilenames(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)

	paths := make(map[string]bool)
	for i := 0; i < 5; i++ {
		backupPath, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}

		filename := filepath.Base(backupPath)
		if paths[filename] {
			t.Errorf("duplicate backup filename: %s", filename)
		}
		paths[filename] = true
	}
}
