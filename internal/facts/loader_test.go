package facts

import (
	"os"
	"path/filepath"
	"testing"

	"migraph/internal/errors"
)

func TestParseBatch(t *testing.T) {
	t.Run("FullFact", func(t *testing.T) {
		data := []byte(`{
			"files": [{
				"filePath": "src/Order.java",
				"packageName": "com.acme.orders",
				"classNames": ["Order", "OrderBuilder"],
				"imports": ["com.acme.db.Repo"],
				"lineCount": 320,
				"methodCount": 14,
				"writesToDb": true,
				"usesAnnotations": true
			}]
		}`)
		batch, err := ParseBatch(data)
		if err != nil {
			t.Fatalf("ParseBatch failed: %v", err)
		}
		if len(batch.Files) != 1 {
			t.Fatalf("expected 1 file, got %d", len(batch.Files))
		}
		f := batch.Files[0]
		if f.FilePath != "src/Order.java" || f.PackageName != "com.acme.orders" {
			t.Errorf("unexpected identity fields: %+v", f)
		}
		if len(f.ClassNames) != 2 || f.LineCount != 320 || f.MethodCount != 14 {
			t.Errorf("unexpected counts: %+v", f)
		}
		if !f.WritesToDb || !f.UsesAnnotations {
			t.Errorf("indicator flags not decoded: %+v", f)
		}
	})

	t.Run("AbsentFieldsDefault", func(t *testing.T) {
		batch, err := ParseBatch([]byte(`{"files": [{"filePath": "src/A.java"}]}`))
		if err != nil {
			t.Fatalf("ParseBatch failed: %v", err)
		}
		f := batch.Files[0]
		if f.PackageName != "" || f.LineCount != 0 || f.WritesToDb {
			t.Errorf("absent fields should decode to zero values: %+v", f)
		}
	})

	t.Run("EmptyBatch", func(t *testing.T) {
		batch, err := ParseBatch([]byte(`{}`))
		if err != nil {
			t.Fatalf("ParseBatch failed: %v", err)
		}
		if batch.Files == nil {
			t.Error("files should be an empty slice, not nil")
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		_, err := ParseBatch([]byte(`{"files": [`))
		if !errors.IsCode(err, errors.FactsInvalid) {
			t.Errorf("expected FACTS_INVALID, got %v", err)
		}
	})
}

func TestLoadBatch(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		_, err := LoadBatch(filepath.Join(t.TempDir(), "nope.json"))
		if !errors.IsCode(err, errors.FactsNotFound) {
			t.Errorf("expected FACTS_NOT_FOUND, got %v", err)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "facts.json")
		if err := os.WriteFile(path, []byte(`{"files":[{"filePath":"src/A.java"}]}`), 0o644); err != nil {
			t.Fatal(err)
		}
		batch, err := LoadBatch(path)
		if err != nil {
			t.Fatalf("LoadBatch failed: %v", err)
		}
		if len(batch.Files) != 1 {
			t.Errorf("expected 1 file, got %d", len(batch.Files))
		}
	})
}
