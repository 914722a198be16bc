package sanice

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/rs/zerolog"
)

// quiet builds a pipeline over records with logging and table output
// suppressed.
func quiet(t *testing.T, records [][]string, opts ...Option) *Pipeline {
	t.Helper()
	df := dataframe.LoadRecords(records)
	if df.Err != nil {
		t.Fatalf("LoadRecords() error = %v", df.Err)
	}
	opts = append([]Option{
		WithLang("en"),
		WithLogger(zerolog.Nop()),
		WithOutput(io.Discard),
	}, opts...)
	return FromDataFrame(df, opts...)
}

func TestFixColumns(t *testing.T) {
	p := quiet(t, [][]string{
		{"Preço Total", "Data/Hora", "Nome-Cliente"},
		{"10", "2023-01-01", "alice"},
	})

	p.FixColumns()
	if p.Err() != nil {
		t.Fatalf("Err() = %v", p.Err())
	}

	want := []string{"preco_total", "data_hora", "nome_cliente"}
	got := p.DataFrame().Names()
	for i, name := range want {
		if got[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], name)
		}
	}
}

func TestCleanText(t *testing.T) {
	p := quiet(t, [][]string{
		{"name"},
		{"  alice smith "},
		{"BOB JONES"},
		{"NaN"},
	})

	p.CleanText("name")

	got := p.DataFrame().Col("name").Records()
	if got[0] != "Alice Smith" {
		t.Errorf("records[0] = %q, want %q", got[0], "Alice Smith")
	}
	if got[1] != "Bob Jones" {
		t.Errorf("records[1] = %q, want %q", got[1], "Bob Jones")
	}
	if got[2] != "NaN" {
		t.Errorf("records[2] = %q, want null preserved", got[2])
	}
}

func TestRemoveNullsDrop(t *testing.T) {
	p := quiet(t, [][]string{
		{"a", "b"},
		{"1", "x"},
		{"NaN", "y"},
		{"2", "z"},
	})

	p.RemoveNulls("drop", nil)
	if n := p.DataFrame().Nrow(); n != 2 {
		t.Errorf("Nrow() = %d, want 2", n)
	}

	// Multilingual strategy spelling.
	p2 := quiet(t, [][]string{
		{"a"},
		{"1"},
		{"NaN"},
	})
	p2.RemoveNulls("hataye", nil)
	if n := p2.DataFrame().Nrow(); n != 1 {
		t.Errorf("Nrow() after hataye = %d, want 1", n)
	}
}

func TestRemoveNullsFill(t *testing.T) {
	p := quiet(t, [][]string{
		{"a"},
		{"1"},
		{"NaN"},
		{"3"},
	})

	p.RemoveNulls("fill", 0)
	got := p.DataFrame().Col("a").Float()
	if got[1] != 0 {
		t.Errorf("filled value = %v, want 0", got[1])
	}
	if p.DataFrame().Nrow() != 3 {
		t.Errorf("Nrow() = %d, want 3", p.DataFrame().Nrow())
	}
}

func TestRemoveNullsUnknownStrategy(t *testing.T) {
	p := quiet(t, [][]string{{"a"}, {"1"}})
	p.RemoveNulls("shuffle", nil)
	if p.Err() == nil {
		t.Error("unknown strategy should record an error")
	}
}

func TestTransformCurrency(t *testing.T) {
	tests := []struct {
		name string
		rule string
		lang string
		in   string
		want float64
	}{
		{"brl format", "BRL", "en", "R$ 1.234,56", 1234.56},
		{"usd format", "USD", "en", "$1,234.56", 1234.56},
		{"cny format", "CNY", "en", "¥1,234.5", 1234.5},
		{"inr format", "INR", "en", "₹1,234", 1234},
		{"pipeline currency via generic rule", "money", "pt", "R$ 99,90", 99.90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := quiet(t, [][]string{{"price"}, {tt.in}}, WithLang(tt.lang))
			p.Transform(tt.rule, "price")
			got := p.DataFrame().Col("price").Float()[0]
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Transform(%q) = %v, want %v", tt.rule, got, tt.want)
			}
		})
	}
}

func TestTransformDigits(t *testing.T) {
	p := quiet(t, [][]string{
		{"phone"},
		{"(11) 98765-4321"},
	})

	p.Transform("digits", "phone")
	if got := p.DataFrame().Col("phone").Records()[0]; got != "11987654321" {
		t.Errorf("digits transform = %q, want %q", got, "11987654321")
	}
}

func TestTransformEmail(t *testing.T) {
	p := quiet(t, [][]string{
		{"email"},
		{"  John@Example.COM "},
		{"not-an-email"},
	})

	p.Transform("email", "email")
	got := p.DataFrame().Col("email").Records()
	if got[0] != "john@example.com" {
		t.Errorf("email transform = %q, want %q", got[0], "john@example.com")
	}
	if got[1] != "NaN" {
		t.Errorf("invalid address = %q, want null", got[1])
	}
}

func TestTransformUnknownRule(t *testing.T) {
	p := quiet(t, [][]string{{"a"}, {"x"}})
	p.Transform("rot13", "a")
	// Unknown rules warn but leave the table untouched.
	if got := p.DataFrame().Col("a").Records()[0]; got != "x" {
		t.Errorf("column changed under unknown rule: %q", got)
	}
}

func TestFilter(t *testing.T) {
	records := [][]string{
		{"price", "city"},
		{"5", "porto"},
		{"15", "lisboa"},
		{"25", "porto"},
	}

	p := quiet(t, records)
	p.Filter("price > 10")
	if n := p.DataFrame().Nrow(); n != 2 {
		t.Errorf("Nrow() after > filter = %d, want 2", n)
	}

	p = quiet(t, records)
	p.Filter("price < 10 || city == lisboa")
	if n := p.DataFrame().Nrow(); n != 2 {
		t.Errorf("Nrow() after || filter = %d, want 2", n)
	}

	p = quiet(t, records)
	p.Filter("price > 10 && city == porto")
	if n := p.DataFrame().Nrow(); n != 1 {
		t.Errorf("Nrow() after && filter = %d, want 1", n)
	}
}

func TestFilterErrors(t *testing.T) {
	records := [][]string{{"a"}, {"1"}}

	p := quiet(t, records)
	p.Filter("a > 1 && a < 3 || a == 5")
	if p.Err() == nil {
		t.Error("mixed combinators should record an error")
	}

	p = quiet(t, records)
	p.Filter("a ~ 1")
	if p.Err() == nil {
		t.Error("unknown operator should record an error")
	}
}

func TestSort(t *testing.T) {
	p := quiet(t, [][]string{
		{"v"},
		{"3"},
		{"1"},
		{"2"},
	})

	p.Sort(false, "v")
	got := p.DataFrame().Col("v").Float()
	if got[0] != 3 || got[2] != 1 {
		t.Errorf("descending sort = %v", got)
	}
}

func TestJoin(t *testing.T) {
	left := quiet(t, [][]string{
		{"id", "v"},
		{"1", "a"},
		{"2", "b"},
	})
	right := quiet(t, [][]string{
		{"id", "w"},
		{"2", "x"},
		{"3", "y"},
	})

	left.Join(right, "inner", "id")
	if left.Err() != nil {
		t.Fatalf("Err() = %v", left.Err())
	}
	if n := left.DataFrame().Nrow(); n != 1 {
		t.Errorf("inner join Nrow() = %d, want 1", n)
	}
}

func TestSelectColumns(t *testing.T) {
	p := quiet(t, [][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
	})

	p.SelectColumns("a", "missing", "c")
	if p.Err() != nil {
		t.Fatalf("missing column should warn, not fail: %v", p.Err())
	}
	if n := p.DataFrame().Ncol(); n != 2 {
		t.Errorf("Ncol() = %d, want 2", n)
	}
}

func TestHandleOutliers(t *testing.T) {
	records := [][]string{{"v"}}
	for _, v := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "1000"} {
		records = append(records, []string{v})
	}

	p := quiet(t, records)
	p.HandleOutliers("v")
	if n := p.DataFrame().Nrow(); n != 10 {
		t.Errorf("Nrow() = %d, want 10 (outlier removed)", n)
	}
}

func TestIQRFences(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		lo     float64
		hi     float64
		tol    float64
	}{
		{
			// Quartiles interpolate between order statistics:
			// q1 = 1.75, q3 = 3.25.
			name:   "four values",
			values: []float64{1, 2, 3, 4},
			lo:     -0.5,
			hi:     5.5,
			tol:    1e-9,
		},
		{
			// q1 = 3.5, q3 = 8.5.
			name:   "ten plus outlier",
			values: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 1000},
			lo:     -4,
			hi:     16,
			tol:    1e-9,
		},
		{
			name:   "single value",
			values: []float64{7},
			lo:     7,
			hi:     7,
			tol:    1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := iqrFences(tt.values)
			if !ok {
				t.Fatal("iqrFences() ok = false")
			}
			if math.Abs(lo-tt.lo) > tt.tol {
				t.Errorf("lo = %v, want %v", lo, tt.lo)
			}
			if math.Abs(hi-tt.hi) > tt.tol {
				t.Errorf("hi = %v, want %v", hi, tt.hi)
			}
		})
	}
}

func TestScaleMinMax(t *testing.T) {
	p := quiet(t, [][]string{
		{"v", "name"},
		{"10", "a"},
		{"20", "b"},
		{"30", "c"},
	})

	p.Scale("minmax")
	if p.Err() != nil {
		t.Fatalf("Err() = %v", p.Err())
	}

	got := p.DataFrame().Col("v").Float()
	if got[0] != 0 || got[2] != 1 {
		t.Errorf("minmax scaled = %v, want [0 0.5 1]", got)
	}
	if p.scaler == nil {
		t.Error("fitted scaler should be retained")
	}
}

func TestCreateColumn(t *testing.T) {
	p := quiet(t, [][]string{
		{"price", "qty"},
		{"2.5", "4"},
		{"3", "2"},
	})

	p.CreateColumn("total", func(r Row) interface{} {
		return r["price"].(float64) * float64(r["qty"].(int))
	})
	if p.Err() != nil {
		t.Fatalf("Err() = %v", p.Err())
	}

	got := p.DataFrame().Col("total").Float()
	if got[0] != 10 || got[1] != 6 {
		t.Errorf("total = %v, want [10 6]", got)
	}
}

func TestConvertDate(t *testing.T) {
	p := quiet(t, [][]string{
		{"when"},
		{"31/12/2023"},
		{"garbage"},
	})

	p.ConvertDate("02/01/2006", "when")
	got := p.DataFrame().Col("when").Records()
	if got[0] != "2023-12-31 00:00:00" {
		t.Errorf("converted = %q, want %q", got[0], "2023-12-31 00:00:00")
	}
	if got[1] != "NaN" {
		t.Errorf("unparseable cell = %q, want null", got[1])
	}
	if !p.dateCols["when"] {
		t.Error("converted column should be registered as a date column")
	}
}

func TestSmartRunDetectsDates(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"when", "v"},
		{"2023-01-01", "1"},
		{"2023-02-15", "2"},
		{"2023-03-20", "3"},
	})
	p := FromDataFrame(df,
		WithLang("en"),
		WithLogger(zerolog.Nop()),
		WithOutput(io.Discard),
		WithSmartRun(true),
	)

	if !p.dateCols["when"] {
		t.Error("smart run should register a mostly-parseable column as dates")
	}
	if p.dateCols["v"] {
		t.Error("numeric column must not be registered as dates")
	}
}

func TestInvokeAliases(t *testing.T) {
	records := [][]string{
		{"Preço", "v"},
		{"1", "2"},
	}

	// Same operation under three spellings.
	for _, verb := range []string{"corrigir_colunas", "fix_columns", "修正列名"} {
		p := quiet(t, records)
		p.Invoke(verb)
		if p.Err() != nil {
			t.Fatalf("Invoke(%q) error = %v", verb, p.Err())
		}
		if got := p.DataFrame().Names()[0]; got != "preco" {
			t.Errorf("Invoke(%q): column = %q, want %q", verb, got, "preco")
		}
	}
}

func TestInvokeUnknown(t *testing.T) {
	p := quiet(t, [][]string{{"a"}, {"1"}})
	p.Invoke("do_magic")
	if p.Err() == nil {
		t.Error("unknown command should record an error")
	}
}

func TestFailedLoadIsInert(t *testing.T) {
	p := New("testdata/does-not-exist.csv",
		WithLang("en"),
		WithLogger(zerolog.Nop()),
		WithOutput(io.Discard),
	)
	if p.Err() == nil {
		t.Fatal("missing file should record an error")
	}

	// Every subsequent operation is a no-op, not a panic.
	p.FixColumns().RemoveNulls("drop", nil).Filter("a > 1").Save("out.csv")
	if p.Err() == nil {
		t.Error("error should persist through the chain")
	}
}

func TestHelpListsCommands(t *testing.T) {
	var buf bytes.Buffer
	p := quiet(t, [][]string{{"a"}, {"1"}}, WithOutput(&buf))

	p.Help()
	out := buf.String()
	if !strings.Contains(out, ".fix_columns()") {
		t.Errorf("en help output missing command spelling: %q", out)
	}
}

func TestGroupBy(t *testing.T) {
	var buf bytes.Buffer
	p := quiet(t, [][]string{
		{"city", "sales"},
		{"porto", "10"},
		{"lisboa", "5"},
		{"porto", "20"},
	}, WithOutput(&buf))

	p.GroupBy([]string{"city"}, "sales", "sum")
	if p.Err() != nil {
		t.Fatalf("Err() = %v", p.Err())
	}
	if !strings.Contains(buf.String(), "porto") {
		t.Errorf("grouped output missing group key: %q", buf.String())
	}
}

func TestPivotTable(t *testing.T) {
	var buf bytes.Buffer
	p := quiet(t, [][]string{
		{"city", "year", "sales"},
		{"porto", "2023", "10"},
		{"porto", "2024", "20"},
		{"lisboa", "2023", "5"},
	}, WithOutput(&buf))

	p.PivotTable("city", "year", "sales", "sum")
	if p.Err() != nil {
		t.Fatalf("Err() = %v", p.Err())
	}
	out := buf.String()
	if !strings.Contains(out, "2023") || !strings.Contains(out, "2024") {
		t.Errorf("pivot output missing year columns: %q", out)
	}
}

func TestDescribeWrites(t *testing.T) {
	var buf bytes.Buffer
	p := quiet(t, [][]string{
		{"v"},
		{"1"},
		{"2"},
	}, WithOutput(&buf))

	p.Describe()
	if buf.Len() == 0 {
		t.Error("Describe() wrote nothing")
	}
}

func TestCorrelationMatrix(t *testing.T) {
	var buf bytes.Buffer
	p := quiet(t, [][]string{
		{"a", "b"},
		{"1", "2"},
		{"2", "4"},
		{"3", "6"},
	}, WithOutput(&buf))

	p.CorrelationMatrix()
	if p.Err() != nil {
		t.Fatalf("Err() = %v", p.Err())
	}
	// Perfectly correlated columns print 1.00 on and off the diagonal.
	if !strings.Contains(buf.String(), "1.00") {
		t.Errorf("correlation output = %q", buf.String())
	}
}

func TestDefaultCurrencyFollowsLang(t *testing.T) {
	p := quiet(t, [][]string{{"a"}, {"1"}}, WithLang("zh"))
	if p.Currency() != "CNY" {
		t.Errorf("Currency() = %q, want CNY", p.Currency())
	}

	p = quiet(t, [][]string{{"a"}, {"1"}}, WithLang("pt"), WithCurrency("usd"))
	if p.Currency() != "USD" {
		t.Errorf("Currency() = %q, want USD override", p.Currency())
	}
}
