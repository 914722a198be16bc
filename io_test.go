package sanice

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

var ioRecords = [][]string{
	{"name", "price"},
	{"alpha", "1.5"},
	{"beta", "2.5"},
	{"gamma", "3.5"},
}

func reload(t *testing.T, path string) *Pipeline {
	t.Helper()
	p := New(path,
		WithLang("en"),
		WithLogger(zerolog.Nop()),
		WithOutput(io.Discard),
	)
	if p.Err() != nil {
		t.Fatalf("New(%q) error = %v", path, p.Err())
	}
	return p
}

func testRoundTrip(t *testing.T, ext string) {
	path := filepath.Join(t.TempDir(), "data"+ext)

	p := quiet(t, ioRecords)
	p.Save(path)
	if p.Err() != nil {
		t.Fatalf("Save(%q) error = %v", path, p.Err())
	}

	got := reload(t, path)
	if got.DataFrame().Nrow() != 3 {
		t.Errorf("Nrow() = %d, want 3", got.DataFrame().Nrow())
	}
	if got.DataFrame().Ncol() != 2 {
		t.Errorf("Ncol() = %d, want 2", got.DataFrame().Ncol())
	}

	names := got.DataFrame().Col("name").Records()
	if names[0] != "alpha" || names[2] != "gamma" {
		t.Errorf("name column = %v", names)
	}

	prices := got.DataFrame().Col("price").Float()
	if prices[1] != 2.5 {
		t.Errorf("price[1] = %v, want 2.5", prices[1])
	}
}

func TestRoundTripCSV(t *testing.T)     { testRoundTrip(t, ".csv") }
func TestRoundTripJSON(t *testing.T)    { testRoundTrip(t, ".json") }
func TestRoundTripExcel(t *testing.T)   { testRoundTrip(t, ".xlsx") }
func TestRoundTripParquet(t *testing.T) { testRoundTrip(t, ".parquet") }

// The parquet reader takes its schema from the file itself; mixed
// column types must survive the trip.
func TestRoundTripParquetTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typed.parquet")

	p := quiet(t, [][]string{
		{"id", "score", "active", "name"},
		{"1", "0.5", "true", "alpha"},
		{"2", "1.5", "false", "beta"},
	})
	p.Save(path)
	if p.Err() != nil {
		t.Fatalf("Save(%q) error = %v", path, p.Err())
	}

	got := reload(t, path)
	if got.DataFrame().Nrow() != 2 {
		t.Fatalf("Nrow() = %d, want 2", got.DataFrame().Nrow())
	}
	if ids := got.DataFrame().Col("id").Float(); ids[1] != 2 {
		t.Errorf("id[1] = %v, want 2", ids[1])
	}
	if scores := got.DataFrame().Col("score").Float(); scores[0] != 0.5 {
		t.Errorf("score[0] = %v, want 0.5", scores[0])
	}
	if actives := got.DataFrame().Col("active").Records(); actives[1] != "false" {
		t.Errorf("active[1] = %q, want false", actives[1])
	}
}

func TestUnsupportedFormat(t *testing.T) {
	p := New("data.txt",
		WithLang("en"),
		WithLogger(zerolog.Nop()),
		WithOutput(io.Discard),
	)
	if p.Err() == nil {
		t.Error("unsupported extension should record an error")
	}

	q := quiet(t, ioRecords)
	q.Save(filepath.Join(t.TempDir(), "data.txt"))
	if q.Err() == nil {
		t.Error("unsupported save extension should record an error")
	}
}
