package sanice

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog"

	"github.com/araddon/dateparse"
	"github.com/go-sanice/sanice/core/model"
	"github.com/go-sanice/sanice/lang"
	"github.com/go-sanice/sanice/pkg/log"
)

// dateLayout is the canonical storage format for converted dates.
const dateLayout = "2006-01-02 15:04:05"

// Row is one dataframe row as seen by CreateColumn callbacks, keyed by
// column name.
type Row map[string]interface{}

// Pipeline wraps one tabular dataset plus the state accumulated while
// cleaning and modeling it: the language profile, the active currency,
// the fitted scaler, the registered date columns and the active model
// artifact.
type Pipeline struct {
	df       dataframe.DataFrame
	lang     string
	currency string
	smartRun bool
	logger   zerolog.Logger
	out      io.Writer

	loaded bool
	err    error

	scaler    model.Transformer
	scaleCols []string
	dateCols  map[string]bool
	artifact  *Artifact
}

// Option configures a Pipeline at construction time.
type Option func(*Pipeline)

// WithLang selects the language profile (pt, en, zh or hi). The
// default is Portuguese, the canonical catalog.
func WithLang(code string) Option {
	return func(p *Pipeline) { p.lang = code }
}

// WithCurrency overrides the currency assumed by the currency
// Transform rule. The default follows the language profile.
func WithCurrency(code string) Option {
	return func(p *Pipeline) { p.currency = strings.ToUpper(code) }
}

// WithSmartRun enables date sniffing at load time: string columns
// where more than 80% of the non-null cells parse as dates are
// converted and registered as date columns.
func WithSmartRun(on bool) Option {
	return func(p *Pipeline) { p.smartRun = on }
}

// WithLogger replaces the default stderr console logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithOutput redirects the tabular output of Head, Describe, GroupBy
// and friends. The default is stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) { p.out = w }
}

func newPipeline(opts []Option) *Pipeline {
	p := &Pipeline{
		lang:     "pt",
		logger:   log.NewDefault(),
		out:      os.Stdout,
		dateCols: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.currency == "" {
		p.currency = lang.DefaultCurrency(p.lang)
	}
	return p
}

// New loads a dataset from disk into a fresh Pipeline. The format is
// chosen by extension: .csv, .json, .xls, .xlsx or .parquet. A load
// failure is logged and leaves the pipeline empty; every subsequent
// operation is then a no-op and Err reports the cause.
func New(path string, opts ...Option) *Pipeline {
	p := newPipeline(opts)

	df, err := readFile(path)
	if err != nil {
		p.fail("load_err", err, lang.Args{"e": err})
		return p
	}

	p.df = df
	p.loaded = true
	p.logf("load_ok", lang.Args{"rows": p.df.Nrow(), "cols": p.df.Ncol()})

	if p.smartRun {
		p.detectDates()
	}
	return p
}

// FromDataFrame wraps an existing gota dataframe in a Pipeline. The
// dataframe is copied so the pipeline owns its data.
func FromDataFrame(df dataframe.DataFrame, opts ...Option) *Pipeline {
	p := newPipeline(opts)

	if df.Err != nil {
		p.fail("load_err", df.Err, lang.Args{"e": df.Err})
		return p
	}

	p.df = df.Copy()
	p.loaded = true
	p.logf("load_ok", lang.Args{"rows": p.df.Nrow(), "cols": p.df.Ncol()})

	if p.smartRun {
		p.detectDates()
	}
	return p
}

// DataFrame returns the wrapped dataframe, the escape hatch back into
// plain gota.
func (p *Pipeline) DataFrame() dataframe.DataFrame {
	return p.df
}

// Err returns the last error recorded by an operation, or nil.
func (p *Pipeline) Err() error {
	return p.err
}

// Lang returns the active language profile.
func (p *Pipeline) Lang() string {
	return p.lang
}

// Currency returns the active currency code.
func (p *Pipeline) Currency() string {
	return p.currency
}

// SetVerbosity adjusts the logger level: silent, error, warn, info or
// debug. Unknown names fall back to info.
func (p *Pipeline) SetVerbosity(level string) *Pipeline {
	level = strings.ToLower(strings.TrimSpace(level))
	p.logger = p.logger.Level(log.ToLevel(level))
	if level != "silent" {
		p.printf("%s\n", lang.Format(p.lang, "log_level", lang.Args{"level": strings.ToUpper(level)}))
	}
	return p
}

// Help logs the command set available under the active language
// profile.
func (p *Pipeline) Help() *Pipeline {
	p.logf("help_title", lang.Args{"lang": p.lang})
	cmds := lang.Commands(p.lang)
	for i, c := range cmds {
		cmds[i] = "." + c + "()"
	}
	p.printf("%s\n", strings.Join(cmds, ", "))
	return p
}

// ready reports whether the pipeline holds data to operate on.
func (p *Pipeline) ready() bool {
	return p.loaded
}

// logf emits a localized info message from the catalog.
func (p *Pipeline) logf(key string, args lang.Args) {
	p.logger.Info().Msg(lang.Format(p.lang, key, args))
}

// warnf emits a localized warning from the catalog.
func (p *Pipeline) warnf(key string, args lang.Args) {
	p.logger.Warn().Msg(lang.Format(p.lang, key, args))
}

// fail records err on the pipeline and logs the localized message;
// the dataset is left unchanged by the caller.
func (p *Pipeline) fail(key string, err error, args lang.Args) {
	p.err = err
	p.logger.Error().Err(err).Msg(lang.Format(p.lang, key, args))
}

// failErr records err on the pipeline and logs it as-is, for errors
// without a dedicated catalog message.
func (p *Pipeline) failErr(err error) {
	p.err = err
	p.logger.Error().Msg(err.Error())
}

// printf writes tabular output (previews, summaries) to the
// configured writer.
func (p *Pipeline) printf(format string, args ...interface{}) {
	if p.out != nil {
		fmt.Fprintf(p.out, format, args...)
	}
}

// hasColumn reports whether the dataset carries a column.
func (p *Pipeline) hasColumn(name string) bool {
	for _, c := range p.df.Names() {
		if c == name {
			return true
		}
	}
	return false
}

// isNullCell treats gota NA elements and empty strings as nulls.
func isNullCell(elem series.Element) bool {
	if elem.IsNA() {
		return true
	}
	return strings.TrimSpace(elem.String()) == ""
}

// detectDates implements the smart-run date sniff: a string column
// converts when more than 80% of its non-null cells parse leniently.
func (p *Pipeline) detectDates() {
	names := p.df.Names()
	types := p.df.Types()

	for i, col := range names {
		if types[i] != series.String || p.dateCols[col] {
			continue
		}

		records := p.df.Col(col).Records()
		nonNull, parsed := 0, 0
		for _, rec := range records {
			if rec == "" || rec == "NaN" {
				continue
			}
			nonNull++
			if _, err := dateparse.ParseAny(rec); err == nil {
				parsed++
			}
		}

		if nonNull > 0 && float64(parsed)/float64(nonNull) > 0.8 {
			if err := p.convertDateColumn(col, ""); err == nil {
				p.logf("auto_date", lang.Args{"col": col})
			}
		}
	}
}

// convertDateColumn parses a column into the canonical date layout and
// registers it as a date column. An empty layout uses lenient
// inference; unparseable cells become null.
func (p *Pipeline) convertDateColumn(col, layout string) error {
	s := p.df.Col(col)
	if s.Err != nil {
		return s.Err
	}

	records := s.Records()
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = "NaN"
		if rec == "" || rec == "NaN" {
			continue
		}
		if layout != "" {
			if t, err := parseWithLayout(rec, layout); err == nil {
				out[i] = t.Format(dateLayout)
			}
			continue
		}
		if t, err := dateparse.ParseAny(rec); err == nil {
			out[i] = t.Format(dateLayout)
		}
	}

	p.df = p.df.Mutate(series.New(out, series.String, col))
	if p.df.Err != nil {
		return p.df.Err
	}
	p.dateCols[col] = true
	return nil
}
