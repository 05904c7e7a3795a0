package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zedyas/zen-data-explorer/internal/dataset"
)

const sampleCSV = `id,amount,active,signup,note
1,10.5,true,2024-01-15,first
2,20,false,2024-02-01,
3,,yes,2024-02-20,third
4,7.25,no,2024-03-05,fourth
`

func TestLoadTypesColumns(t *testing.T) {
	w, err := Load(strings.NewReader(sampleCSV), ',', 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Rows) != 4 || w.Truncated {
		t.Fatalf("rows=%d truncated=%v", len(w.Rows), w.Truncated)
	}

	want := map[string]dataset.ColumnType{
		"id":     dataset.TypeInteger,
		"amount": dataset.TypeFloat,
		"active": dataset.TypeBoolean,
		"signup": dataset.TypeDate,
		"note":   dataset.TypeString,
	}
	schema := w.Schema()
	for name, typ := range want {
		if schema[name] != typ {
			t.Errorf("%s inferred as %s, want %s", name, schema[name], typ)
		}
	}

	r := w.Rows[0]
	if v, ok := r["id"].(int64); !ok || v != 1 {
		t.Errorf("id cell = %#v", r["id"])
	}
	if v, ok := r["amount"].(float64); !ok || v != 10.5 {
		t.Errorf("amount cell = %#v", r["amount"])
	}
	if v, ok := r["active"].(bool); !ok || !v {
		t.Errorf("active cell = %#v", r["active"])
	}
	if v, ok := r["signup"].(string); !ok || v != "2024-01-15" {
		t.Errorf("signup cell = %#v", r["signup"])
	}
}

func TestLoadMissingCellsBecomeNil(t *testing.T) {
	w, err := Load(strings.NewReader(sampleCSV), ',', 0)
	if err != nil {
		t.Fatal(err)
	}
	if w.Rows[1]["note"] != nil {
		t.Errorf("empty note = %#v, want nil", w.Rows[1]["note"])
	}
	if w.Rows[2]["amount"] != nil {
		t.Errorf("empty amount = %#v, want nil", w.Rows[2]["amount"])
	}
}

func TestLoadWindowBound(t *testing.T) {
	var b strings.Builder
	b.WriteString("n\n")
	for i := 0; i < 50; i++ {
		b.WriteString("1\n")
	}
	w, err := Load(strings.NewReader(b.String()), ',', 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Rows) != 10 || !w.Truncated {
		t.Errorf("rows=%d truncated=%v, want 10 and true", len(w.Rows), w.Truncated)
	}
}

func TestLoadMixedColumnFallsBackToString(t *testing.T) {
	in := "x\n1\nhello\n2.5\n"
	w, err := Load(strings.NewReader(in), ',', 0)
	if err != nil {
		t.Fatal(err)
	}
	if w.Columns[0].Type != dataset.TypeString {
		t.Errorf("mixed column inferred as %s", w.Columns[0].Type)
	}
	if w.Rows[0]["x"] != "1" {
		t.Errorf("string column keeps raw values, got %#v", w.Rows[0]["x"])
	}
}

func TestLoadRaggedAndBlankHeaders(t *testing.T) {
	in := "a,,c\n1,2,3\n4,5\n"
	w, err := Load(strings.NewReader(in), ',', 0)
	if err != nil {
		t.Fatal(err)
	}
	if w.Columns[1].Name != "column_2" {
		t.Errorf("blank header named %q", w.Columns[1].Name)
	}
	if w.Rows[1]["c"] != nil {
		t.Errorf("short record cell = %#v, want nil", w.Rows[1]["c"])
	}
}

func TestLoadEmptyInput(t *testing.T) {
	if _, err := Load(strings.NewReader(""), ',', 0); err == nil {
		t.Fatal("expected an error for headerless input")
	}
}

func TestLoadCSVFileAndTSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.tsv")
	if err := os.WriteFile(path, []byte("a\tb\n1\tx\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := LoadCSV(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Columns) != 2 || len(w.Rows) != 1 {
		t.Fatalf("columns=%d rows=%d", len(w.Columns), len(w.Rows))
	}
	rs := w.ResultSet()
	if len(rs.Columns) != 2 || rs.Columns[0] != "a" {
		t.Errorf("result set columns = %v", rs.Columns)
	}
}
