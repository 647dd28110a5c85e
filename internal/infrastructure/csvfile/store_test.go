package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/laliga-stats/internal/platform/table"
)

func TestStore_WriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(t.TempDir(), Options{BOM: true})

	in := table.New("teams", "equipo", "ciudad")
	in.Append("Atlético Madrid", "Madrid")
	in.Append("Alavés, Deportivo", "Vitoria-Gasteiz")

	if err := store.Write(ctx, "teams.csv", in); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := os.ReadFile(store.Path("teams.csv"))
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if !strings.HasPrefix(string(raw), "\ufeffequipo,ciudad\n") {
		t.Fatalf("expected BOM and header, got %q", raw[:20])
	}

	out, err := store.Read(ctx, "teams.csv")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Name != "teams" {
		t.Fatalf("unexpected table name %q", out.Name)
	}
	if !reflect.DeepEqual(out.Columns, in.Columns) || !reflect.DeepEqual(out.Rows, in.Rows) {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestStore_ReadMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir(), Options{})
	_, err := store.Read(context.Background(), "nope.csv")
	if !crerr.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if store.Exists(context.Background(), "nope.csv") {
		t.Fatalf("missing file must not exist")
	}
}

func TestStore_AppendAlignsToExistingSchema(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(t.TempDir(), Options{})

	first := table.New("raw", "Player", "Gls", "match_url")
	first.Append("Pedri", "1", "u1")
	schema, err := store.Append(ctx, "raw.csv", first)
	if err != nil {
		t.Fatalf("first append: %v", err)
	}
	if !reflect.DeepEqual(schema, []string{"Player", "Gls", "match_url"}) {
		t.Fatalf("unexpected schema %v", schema)
	}

	second := table.New("raw", "match_url", "Player", "Ast")
	second.Append("u2", "Lamine Yamal", "2")
	if _, err := store.Append(ctx, "raw.csv", second); err != nil {
		t.Fatalf("second append: %v", err)
	}

	out, err := store.Read(ctx, "raw.csv")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := [][]string{
		{"Pedri", "1", "u1"},
		{"Lamine Yamal", "", "u2"},
	}
	if !reflect.DeepEqual(out.Rows, want) {
		t.Fatalf("unexpected rows %v", out.Rows)
	}
}

func TestDecode_PadsShortRowsAndSkipsBOM(t *testing.T) {
	t.Parallel()

	out, err := Decode("x", strings.NewReader("\ufeffa,b,c\n1,2\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Columns[0] != "a" {
		t.Fatalf("BOM not stripped: %q", out.Columns[0])
	}
	if !reflect.DeepEqual(out.Rows[0], []string{"1", "2", ""}) {
		t.Fatalf("unexpected row %v", out.Rows[0])
	}
}

func TestDecode_Empty(t *testing.T) {
	t.Parallel()

	out, err := Decode("empty", strings.NewReader(""))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Len() != 0 || len(out.Columns) != 0 {
		t.Fatalf("expected empty table, got %+v", out)
	}
}

func TestStore_PathKeepsAbsolute(t *testing.T) {
	t.Parallel()

	store := NewStore("data", Options{})
	abs := filepath.Join(t.TempDir(), "x.csv")
	if store.Path(abs) != abs {
		t.Fatalf("absolute path rewritten: %s", store.Path(abs))
	}
	if store.Path("x.csv") != filepath.Join("data", "x.csv") {
		t.Fatalf("unexpected relative path: %s", store.Path("x.csv"))
	}
}
