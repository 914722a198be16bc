package sanice

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"github.com/go-sanice/sanice/lang"
	"github.com/go-sanice/sanice/pkg/errors"
)

// CreateColumn derives a new column by running fn over every row. The
// column type follows the values fn returns: numbers become a float
// column, bools a bool column, everything else a string column.
func (p *Pipeline) CreateColumn(name string, fn func(Row) interface{}) *Pipeline {
	if !p.ready() {
		return p
	}

	rows := p.df.Maps()
	values := make([]interface{}, len(rows))
	for i, m := range rows {
		values[i] = fn(Row(m))
	}

	p.df = p.df.Mutate(newSeriesFor(name, values))
	if p.df.Err != nil {
		p.failErr(p.df.Err)
		return p
	}

	p.logf("col_add", lang.Args{"col": name})
	return p
}

// newSeriesFor builds a series from untyped values, picking the series
// type from the first non-nil value.
func newSeriesFor(name string, values []interface{}) series.Series {
	kind := series.String
	for _, v := range values {
		switch v.(type) {
		case nil:
			continue
		case float64, float32, int, int32, int64:
			kind = series.Float
		case bool:
			kind = series.Bool
		}
		break
	}

	out := make([]string, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = "NaN"
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return series.New(out, kind, name)
}

// comparators maps query operators to gota comparators.
var comparators = map[string]series.Comparator{
	">":  series.Greater,
	">=": series.GreaterEq,
	"<":  series.Less,
	"<=": series.LessEq,
	"==": series.Eq,
	"=":  series.Eq,
	"!=": series.Neq,
}

// Filter keeps the rows matching a tiny query string of the form
// "col op value", with clauses joined by && (all must match) or ||
// (any must match). Operators: > >= < <= == !=. Values parse as
// numbers when possible, otherwise as strings; quotes are optional.
// Mixing && and || in one query is not supported.
func (p *Pipeline) Filter(query string) *Pipeline {
	if !p.ready() {
		return p
	}

	filters, agg, err := parseQuery(query)
	if err != nil {
		p.failErr(err)
		return p
	}

	before := p.df.Nrow()
	p.df = p.df.FilterAggregation(agg, filters...)
	if p.df.Err != nil {
		p.failErr(p.df.Err)
		return p
	}

	p.logf("filter", lang.Args{"query": query, "before": before, "after": p.df.Nrow()})
	return p
}

// parseQuery splits a mini-query into gota filters plus the aggregation
// joining them.
func parseQuery(query string) ([]dataframe.F, dataframe.Aggregation, error) {
	agg := dataframe.And
	sep := "&&"

	hasAnd := strings.Contains(query, "&&")
	hasOr := strings.Contains(query, "||")
	if hasAnd && hasOr {
		return nil, agg, errors.NewValueError("filter", "mixing && and || in one query is not supported")
	}
	if hasOr {
		agg = dataframe.Or
		sep = "||"
	}

	clauses := strings.Split(query, sep)
	filters := make([]dataframe.F, 0, len(clauses))
	for _, clause := range clauses {
		parts := strings.Fields(strings.TrimSpace(clause))
		if len(parts) != 3 {
			return nil, agg, errors.NewValueError("filter", "expected 'column op value', got: "+clause)
		}

		cmp, ok := comparators[parts[1]]
		if !ok {
			return nil, agg, errors.NewValueError("filter", "unknown operator: "+parts[1])
		}

		var comparando interface{}
		if f, err := strconv.ParseFloat(parts[2], 64); err == nil {
			comparando = f
		} else {
			comparando = strings.Trim(parts[2], `"'`)
		}

		filters = append(filters, dataframe.F{
			Colname:    parts[0],
			Comparator: cmp,
			Comparando: comparando,
		})
	}
	return filters, agg, nil
}

// Sort orders the rows by the given columns, all ascending or all
// descending.
func (p *Pipeline) Sort(ascending bool, cols ...string) *Pipeline {
	if !p.ready() {
		return p
	}

	orders := make([]dataframe.Order, len(cols))
	for i, col := range cols {
		if ascending {
			orders[i] = dataframe.Sort(col)
		} else {
			orders[i] = dataframe.RevSort(col)
		}
	}

	p.df = p.df.Arrange(orders...)
	if p.df.Err != nil {
		p.failErr(p.df.Err)
		return p
	}

	p.logf("sort", lang.Args{"cols": strings.Join(cols, ", ")})
	return p
}

// Join merges another pipeline's table into this one on the given key
// columns. how selects the join type: inner, left, right or outer.
func (p *Pipeline) Join(other *Pipeline, how string, keys ...string) *Pipeline {
	if !p.ready() {
		return p
	}
	if other == nil || !other.ready() {
		p.failErr(errors.NewValueError("join", "right-hand pipeline holds no data"))
		return p
	}

	before := p.df.Nrow()
	switch strings.ToLower(how) {
	case "inner":
		p.df = p.df.InnerJoin(other.df, keys...)
	case "left":
		p.df = p.df.LeftJoin(other.df, keys...)
	case "right":
		p.df = p.df.RightJoin(other.df, keys...)
	case "outer":
		p.df = p.df.OuterJoin(other.df, keys...)
	default:
		p.failErr(errors.NewValueError("join", "unknown join type: "+how))
		return p
	}
	if p.df.Err != nil {
		p.failErr(p.df.Err)
		return p
	}

	p.logf("join", lang.Args{"how": how, "before": before, "after": p.df.Nrow()})
	return p
}

// SelectColumns keeps only the listed columns. Missing columns are
// warned about and skipped rather than failing the chain.
func (p *Pipeline) SelectColumns(cols ...string) *Pipeline {
	if !p.ready() {
		return p
	}

	existing := make([]string, 0, len(cols))
	missing := make([]string, 0)
	for _, col := range cols {
		if p.hasColumn(col) {
			existing = append(existing, col)
		} else {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		p.warnf("select_warn", lang.Args{"cols": strings.Join(missing, ", ")})
	}

	p.df = p.df.Select(existing)
	if p.df.Err != nil {
		p.failErr(p.df.Err)
		return p
	}

	p.logf("select_ok", lang.Args{"n": len(existing)})
	return p
}

// aggregations maps the accepted aggregation spellings (Portuguese and
// English) to gota aggregation types.
var aggregations = map[string]dataframe.AggregationType{
	"soma":     dataframe.Aggregation_SUM,
	"sum":      dataframe.Aggregation_SUM,
	"media":    dataframe.Aggregation_MEAN,
	"mean":     dataframe.Aggregation_MEAN,
	"contagem": dataframe.Aggregation_COUNT,
	"count":    dataframe.Aggregation_COUNT,
	"max":      dataframe.Aggregation_MAX,
	"min":      dataframe.Aggregation_MIN,
}

// GroupBy aggregates valueCol per group and prints the result. op is
// one of sum/mean/count/max/min (soma/media/contagem also accepted);
// unknown operations default to sum.
func (p *Pipeline) GroupBy(groupCols []string, valueCol, op string) *Pipeline {
	if !p.ready() {
		return p
	}

	aggType, ok := aggregations[strings.ToLower(op)]
	if !ok {
		aggType = dataframe.Aggregation_SUM
	}

	grouped := p.df.GroupBy(groupCols...)
	if grouped.Err != nil {
		p.failErr(grouped.Err)
		return p
	}

	result := grouped.Aggregation([]dataframe.AggregationType{aggType}, []string{valueCol})
	if result.Err != nil {
		p.failErr(result.Err)
		return p
	}

	p.logf("view", lang.Args{"header": fmt.Sprintf("%s (%s)", strings.Join(groupCols, ", "), op)})
	p.printf("%v\n", result)
	return p
}

// PivotTable prints an index-by-column cross aggregation of value.
// agg is sum, mean or count (soma/media/contagem also accepted).
func (p *Pipeline) PivotTable(index, column, value, agg string) *Pipeline {
	if !p.ready() {
		return p
	}

	for _, col := range []string{index, column, value} {
		if !p.hasColumn(col) {
			p.failErr(errors.NewColumnError("pivot_table", col))
			return p
		}
	}

	pivot, err := crossAggregate(p.df, index, column, value, strings.ToLower(agg))
	if err != nil {
		p.failErr(err)
		return p
	}

	p.logf("view", lang.Args{"header": fmt.Sprintf("%s x %s", index, column)})
	p.printf("%v\n", pivot)
	return p
}

// crossAggregate builds the pivot as a fresh dataframe: one row per
// index value, one column per column value, cells aggregated.
func crossAggregate(df dataframe.DataFrame, index, column, value, agg string) (dataframe.DataFrame, error) {
	type cell struct {
		sum   float64
		count int
	}

	idxCol := df.Col(index).Records()
	colCol := df.Col(column).Records()
	valCol := df.Col(value).Float()

	cells := make(map[string]map[string]*cell)
	colSet := make(map[string]bool)
	idxOrder := make([]string, 0)

	for i := range idxCol {
		iv, cv := idxCol[i], colCol[i]
		if _, ok := cells[iv]; !ok {
			cells[iv] = make(map[string]*cell)
			idxOrder = append(idxOrder, iv)
		}
		if _, ok := cells[iv][cv]; !ok {
			cells[iv][cv] = &cell{}
		}
		colSet[cv] = true
		cells[iv][cv].sum += valCol[i]
		cells[iv][cv].count++
	}

	colOrder := make([]string, 0, len(colSet))
	for c := range colSet {
		colOrder = append(colOrder, c)
	}
	sort.Strings(colOrder)
	sort.Strings(idxOrder)

	records := make([][]string, 0, len(idxOrder)+1)
	header := append([]string{index}, colOrder...)
	records = append(records, header)

	for _, iv := range idxOrder {
		row := make([]string, 0, len(header))
		row = append(row, iv)
		for _, cv := range colOrder {
			c, ok := cells[iv][cv]
			if !ok {
				row = append(row, "NaN")
				continue
			}
			var out float64
			switch agg {
			case "media", "mean":
				out = c.sum / float64(c.count)
			case "contagem", "count":
				out = float64(c.count)
			case "soma", "sum", "":
				out = c.sum
			default:
				return dataframe.DataFrame{}, errors.NewValueError("pivot_table", "unknown aggregation: "+agg)
			}
			row = append(row, strconv.FormatFloat(out, 'g', -1, 64))
		}
		records = append(records, row)
	}

	pivot := dataframe.LoadRecords(records)
	return pivot, pivot.Err
}

// Head prints the first n rows under an optional title.
func (p *Pipeline) Head(n int, title string) *Pipeline {
	if !p.ready() {
		return p
	}

	if title == "" {
		title = fmt.Sprintf("Top %d", n)
	}
	if n > p.df.Nrow() {
		n = p.df.Nrow()
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	p.logf("view", lang.Args{"header": title})
	p.printf("%v\n", p.df.Subset(idx))
	return p
}

// Describe prints the gota statistical summary followed by the column
// types.
func (p *Pipeline) Describe() *Pipeline {
	if !p.ready() {
		return p
	}

	p.logf("stats", nil)
	p.printf("%v\n", p.df.Describe())

	p.logf("types", nil)
	types := p.df.Types()
	for i, name := range p.df.Names() {
		p.printf("%-20s %s\n", name, types[i])
	}
	return p
}

// CorrelationMatrix prints the Pearson correlation table of the
// numeric columns.
func (p *Pipeline) CorrelationMatrix() *Pipeline {
	if !p.ready() {
		return p
	}

	cols := p.numericColumns()
	if len(cols) < 2 {
		p.failErr(errors.NewValueError("correlation_matrix", "need at least two numeric columns"))
		return p
	}

	data := make([][]float64, len(cols))
	for i, col := range cols {
		data[i] = p.df.Col(col).Float()
	}

	records := make([][]string, 0, len(cols)+1)
	records = append(records, append([]string{"column"}, cols...))
	for i, col := range cols {
		row := make([]string, 0, len(cols)+1)
		row = append(row, col)
		for j := range cols {
			r := stat.Correlation(data[i], data[j], nil)
			row = append(row, strconv.FormatFloat(r, 'f', 2, 64))
		}
		records = append(records, row)
	}

	table := dataframe.LoadRecords(records)
	if table.Err != nil {
		p.failErr(table.Err)
		return p
	}

	p.logf("view", lang.Args{"header": "Correlation"})
	p.printf("%v\n", table)
	return p
}

// numericColumns lists the Float and Int columns in table order.
func (p *Pipeline) numericColumns() []string {
	names := p.df.Names()
	types := p.df.Types()
	out := make([]string, 0, len(names))
	for i, name := range names {
		if types[i] == series.Float || types[i] == series.Int {
			out = append(out, name)
		}
	}
	return out
}
