package sanice

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/go-sanice/sanice/lang"
	"github.com/go-sanice/sanice/pkg/errors"
)

var (
	colSeparators  = strings.NewReplacer(" ", "_", "/", "_", "-", "_")
	invalidColChar = regexp.MustCompile(`[^a-z0-9_]+`)
	nonDigit       = regexp.MustCompile(`\D`)
	emailPattern   = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

	titleCaser = cases.Title(language.Und)
)

// FixColumns standardizes column names: accents stripped, lowercased,
// spaces, slashes and dashes turned into underscores, anything else
// outside [a-z0-9_] dropped.
func (p *Pipeline) FixColumns() *Pipeline {
	if !p.ready() {
		return p
	}

	old := p.df.Names()
	fixed := make([]string, len(old))
	renames := make(map[string]string, len(old))
	for i, name := range old {
		n := strings.ToLower(strings.TrimSpace(unidecode.Unidecode(name)))
		n = colSeparators.Replace(n)
		n = invalidColChar.ReplaceAllString(n, "")
		fixed[i] = n
		renames[name] = n
	}

	if err := p.df.SetNames(fixed...); err != nil {
		p.failErr(err)
		return p
	}

	// Keep the date-column registry keyed by the new names.
	for name := range p.dateCols {
		if renamed, ok := renames[name]; ok && renamed != name {
			delete(p.dateCols, name)
			p.dateCols[renamed] = true
		}
	}

	p.logf("clean_cols", nil)
	return p
}

// CleanText trims and Title-cases the given string columns. Null cells
// stay null; missing columns are skipped.
func (p *Pipeline) CleanText(cols ...string) *Pipeline {
	if !p.ready() {
		return p
	}

	for _, col := range cols {
		if !p.hasColumn(col) {
			continue
		}

		records := p.df.Col(col).Records()
		out := make([]string, len(records))
		for i, rec := range records {
			if rec == "" || rec == "NaN" {
				out[i] = "NaN"
				continue
			}
			out[i] = titleCaser.String(strings.TrimSpace(rec))
		}

		p.df = p.df.Mutate(series.New(out, series.String, col))
		if p.df.Err != nil {
			p.failErr(p.df.Err)
			return p
		}
		p.logf("clean_txt", lang.Args{"col": col})
	}
	return p
}

// Null-handling strategy spellings accepted by RemoveNulls.
var (
	dropSpellings = map[string]bool{"apagar": true, "drop": true, "删除": true, "hataye": true}
	fillSpellings = map[string]bool{"preencher": true, "fill": true, "填充": true, "bhare": true}
)

// RemoveNulls drops every row holding a null cell (strategy "drop" /
// "apagar") or fills nulls with the given value (strategy "fill" /
// "preencher").
func (p *Pipeline) RemoveNulls(strategy string, fill interface{}) *Pipeline {
	if !p.ready() {
		return p
	}

	switch s := strings.ToLower(strings.TrimSpace(strategy)); {
	case dropSpellings[s]:
		before := p.df.Nrow()
		p.df = dropNullRows(p.df)
		if p.df.Err != nil {
			p.failErr(p.df.Err)
			return p
		}
		p.logf("drop_null", lang.Args{"qtd": before - p.df.Nrow()})

	case fillSpellings[s]:
		p.fillNulls(fill)
		p.logf("fill_null", lang.Args{"val": fill})

	default:
		p.failErr(errors.NewValueError("remove_nulls", "unknown strategy: "+strategy))
	}
	return p
}

// dropNullRows returns the subset of rows with no null cell.
func dropNullRows(df dataframe.DataFrame) dataframe.DataFrame {
	keep := make([]int, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		hasNull := false
		for j := 0; j < df.Ncol(); j++ {
			if isNullCell(df.Elem(i, j)) {
				hasNull = true
				break
			}
		}
		if !hasNull {
			keep = append(keep, i)
		}
	}
	return df.Subset(keep)
}

// fillNulls replaces every null cell with fill, keeping each column's
// original type.
func (p *Pipeline) fillNulls(fill interface{}) {
	val := fmt.Sprint(fill)
	names := p.df.Names()
	types := p.df.Types()

	for j, col := range names {
		s := p.df.Col(col)
		records := s.Records()
		changed := false
		for i := range records {
			if isNullCell(s.Elem(i)) {
				records[i] = val
				changed = true
			}
		}
		if changed {
			p.df = p.df.Mutate(series.New(records, types[j], col))
		}
	}
}

// ConvertDate parses the given columns into the canonical date layout
// and registers them as date columns. An empty layout uses lenient
// inference; cells that fail to parse become null.
func (p *Pipeline) ConvertDate(layout string, cols ...string) *Pipeline {
	if !p.ready() {
		return p
	}

	for _, col := range cols {
		if !p.hasColumn(col) {
			p.failErr(errors.NewColumnError("convert_date", col))
			continue
		}
		if err := p.convertDateColumn(col, layout); err != nil {
			p.failErr(err)
			continue
		}
		p.logf("date_conv", lang.Args{"col": col})
	}
	return p
}

// parseWithLayout parses a single cell against an explicit layout.
func parseWithLayout(value, layout string) (time.Time, error) {
	return time.Parse(layout, value)
}

// Rule spellings accepted by Transform, grouped by rule family.
var (
	moneyRules = map[string]bool{
		"BRL": true, "USD": true, "CNY": true, "INR": true,
		"DINHEIRO": true, "MONEY": true, "CURRENCY": true,
		"金钱": true, "PAISA": true, "MUDRA": true,
	}
	digitRules = map[string]bool{
		"CPF": true, "CNPJ": true, "NUMEROS": true, "NUMBERS": true,
		"TELEFONE": true, "DIGITS": true, "数字": true, "ANK": true,
	}
	emailRules = map[string]bool{
		"EMAIL": true, "E-MAIL": true, "MAIL": true, "邮件": true,
	}
	upperRules = map[string]bool{
		"UPPER": true, "MAIUSCULO": true, "CAPS": true, "大写": true, "BADA": true,
	}
	lowerRules = map[string]bool{
		"LOWER": true, "MINUSCULO": true, "XIAOXIE": true, "CHOTA": true,
	}
)

// currencyCodes are the rules that double as an explicit currency.
var currencyCodes = map[string]bool{"BRL": true, "USD": true, "CNY": true, "INR": true}

// Transform rewrites the given columns under a named rule. Rules come
// in five families, each accepting spellings in all four languages:
// currency (string to float, symbols stripped per currency code),
// digits-only, e-mail normalization, uppercase and lowercase. A rule
// that is itself a currency code overrides the pipeline currency.
func (p *Pipeline) Transform(rule string, cols ...string) *Pipeline {
	if !p.ready() {
		return p
	}

	r := strings.ToUpper(strings.TrimSpace(rule))

	for _, col := range cols {
		if !p.hasColumn(col) {
			continue
		}

		switch {
		case moneyRules[r]:
			code := p.currency
			if currencyCodes[r] {
				code = r
			}
			p.transformMoney(col, code)
			p.logf("trans_money", lang.Args{"col": col})

		case digitRules[r]:
			p.transformDigits(col)
			p.logf("trans_num", lang.Args{"col": col})

		case emailRules[r]:
			p.transformEmail(col)
			p.logf("trans_email", lang.Args{"col": col})

		case upperRules[r]:
			p.transformCase(col, strings.ToUpper)

		case lowerRules[r]:
			p.transformCase(col, strings.ToLower)

		default:
			p.warnf("trans_err", lang.Args{"rule": rule})
			return p
		}
	}
	return p
}

// transformMoney parses a currency-formatted string column into floats.
func (p *Pipeline) transformMoney(col, code string) {
	records := p.df.Col(col).Records()
	out := make([]float64, len(records))
	for i, rec := range records {
		out[i] = parseCurrency(rec, code)
	}
	p.df = p.df.Mutate(series.New(out, series.Float, col))
}

// parseCurrency strips the symbol and separators of one currency and
// parses the remainder as a float. Unparseable cells become NaN.
func parseCurrency(value, code string) float64 {
	s := strings.TrimSpace(value)
	if s == "" || s == "NaN" {
		return math.NaN()
	}

	switch code {
	case "BRL":
		// Brazilian format: R$ 1.234,56
		s = strings.NewReplacer("R$", "", " ", "", ".", "").Replace(s)
		s = strings.ReplaceAll(s, ",", ".")
	case "USD":
		s = strings.NewReplacer("$", "", " ", "", ",", "").Replace(s)
	case "CNY":
		s = strings.NewReplacer("¥", "", " ", "", ",", "").Replace(s)
	case "INR":
		s = strings.NewReplacer("₹", "", " ", "", ",", "").Replace(s)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// transformDigits strips every non-digit character from a column.
func (p *Pipeline) transformDigits(col string) {
	records := p.df.Col(col).Records()
	out := make([]string, len(records))
	for i, rec := range records {
		if rec == "" || rec == "NaN" {
			out[i] = "NaN"
			continue
		}
		out[i] = nonDigit.ReplaceAllString(rec, "")
	}
	p.df = p.df.Mutate(series.New(out, series.String, col))
}

// transformEmail lowercases and trims a column, nulling cells that do
// not look like an e-mail address.
func (p *Pipeline) transformEmail(col string) {
	records := p.df.Col(col).Records()
	out := make([]string, len(records))
	for i, rec := range records {
		v := strings.ToLower(strings.TrimSpace(rec))
		if v == "" || v == "nan" || !emailPattern.MatchString(v) {
			out[i] = "NaN"
			continue
		}
		out[i] = v
	}
	p.df = p.df.Mutate(series.New(out, series.String, col))
}

// transformCase rewrites a string column through a case function,
// preserving nulls.
func (p *Pipeline) transformCase(col string, fn func(string) string) {
	records := p.df.Col(col).Records()
	out := make([]string, len(records))
	for i, rec := range records {
		if rec == "" || rec == "NaN" {
			out[i] = "NaN"
			continue
		}
		out[i] = fn(rec)
	}
	p.df = p.df.Mutate(series.New(out, series.String, col))
}
