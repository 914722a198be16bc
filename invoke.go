package sanice

import (
	"fmt"

	"github.com/go-sanice/sanice/lang"
	"github.com/go-sanice/sanice/pkg/errors"
)

// Invoke dispatches an operation by any registered spelling in any
// supported language, so a script can call p.Invoke("处理异常值",
// "price") or p.Invoke("tratar_outliers", "price") interchangeably.
// Arguments follow the operation's positional order. Unknown names and
// badly-typed arguments record an error and leave the table unchanged.
func (p *Pipeline) Invoke(name string, args ...interface{}) *Pipeline {
	canonical, ok := lang.Resolve(name)
	if !ok {
		p.failErr(errors.NewValueError("invoke", "unknown command: "+name))
		return p
	}

	switch canonical {
	case "corrigir_colunas":
		return p.FixColumns()

	case "limpar_texto":
		return p.CleanText(argAllCols(args)...)

	case "remover_nulos":
		fill := interface{}(0)
		if len(args) > 1 {
			fill = args[1]
		}
		return p.RemoveNulls(argString(args, 0, "apagar"), fill)

	case "converter_data":
		return p.ConvertDate(argString(args, 1, ""), argCols(args, 0)...)

	case "criar_coluna":
		fn, ok := argFunc(args, 1)
		if !ok {
			p.failErr(errors.NewValueError("invoke", "criar_coluna needs a func(Row) interface{}"))
			return p
		}
		return p.CreateColumn(argString(args, 0, ""), fn)

	case "filtrar":
		return p.Filter(argString(args, 0, ""))

	case "ordenar":
		return p.Sort(argBool(args, 1, true), argCols(args, 0)...)

	case "unir":
		other, _ := argAt(args, 0).(*Pipeline)
		return p.Join(other, argString(args, 2, "inner"), argCols(args, 1)...)

	case "resumo_estatistico":
		return p.Describe()

	case "salvar":
		return p.Save(argString(args, 0, ""))

	case "auto_ml":
		opts := []MLOption{WithTask(argString(args, 1, "classificacao"))}
		if size := argFloat(args, 2, 0); size > 0 {
			opts = append(opts, WithTestSize(size))
		}
		if path := argString(args, 3, ""); path != "" {
			opts = append(opts, WithSavePath(path))
		}
		return p.AutoML(argString(args, 0, ""), opts...)

	case "carregar_ia":
		return p.LoadModel(argString(args, 0, ""))

	case "prever":
		return p.Predict(argString(args, 0, "previsao"))

	case "ver":
		return p.Head(argInt(args, 0, 5), argString(args, 1, ""))

	case "ajuda":
		return p.Help()

	case "agrupar":
		return p.GroupBy(argCols(args, 0), argString(args, 1, ""), argString(args, 2, "soma"))

	case "tabela_dinamica":
		return p.PivotTable(argString(args, 0, ""), argString(args, 1, ""), argString(args, 2, ""), argString(args, 3, "soma"))

	case "matriz_correlacao":
		return p.CorrelationMatrix()

	case "tratar_outliers":
		return p.HandleOutliers(argAllCols(args)...)

	case "escalonar":
		return p.Scale(argString(args, 0, "minmax"))

	case "transformar":
		return p.Transform(argString(args, 1, ""), argCols(args, 0)...)

	case "configurar_logs":
		return p.SetVerbosity(argString(args, 0, "info"))

	case "selecionar_colunas":
		return p.SelectColumns(argAllCols(args)...)

	case "pegar_dataframe":
		// Invoke always returns the pipeline; use DataFrame() directly
		// when you need the table itself.
		return p

	default:
		p.failErr(errors.NewValueError("invoke", "command not dispatchable: "+canonical))
		return p
	}
}

// argAt returns the i-th argument or nil.
func argAt(args []interface{}, i int) interface{} {
	if i < len(args) {
		return args[i]
	}
	return nil
}

// argString coerces the i-th argument to a string.
func argString(args []interface{}, i int, def string) string {
	switch v := argAt(args, i).(type) {
	case nil:
		return def
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// argCols coerces the i-th argument to a column list, accepting a
// single name or a slice of names.
func argCols(args []interface{}, i int) []string {
	switch v := argAt(args, i).(type) {
	case string:
		return []string{v}
	case []string:
		return v
	default:
		return nil
	}
}

// argAllCols flattens every argument into a column list, for
// operations whose whole argument list is column names.
func argAllCols(args []interface{}) []string {
	cols := make([]string, 0, len(args))
	for _, a := range args {
		switch v := a.(type) {
		case string:
			cols = append(cols, v)
		case []string:
			cols = append(cols, v...)
		}
	}
	return cols
}

// argInt coerces the i-th argument to an int.
func argInt(args []interface{}, i int, def int) int {
	switch v := argAt(args, i).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// argFloat coerces the i-th argument to a float64.
func argFloat(args []interface{}, i int, def float64) float64 {
	switch v := argAt(args, i).(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	default:
		return def
	}
}

// argBool coerces the i-th argument to a bool.
func argBool(args []interface{}, i int, def bool) bool {
	if v, ok := argAt(args, i).(bool); ok {
		return v
	}
	return def
}

// argFunc extracts a row function from the i-th argument.
func argFunc(args []interface{}, i int) (func(Row) interface{}, bool) {
	switch v := argAt(args, i).(type) {
	case func(Row) interface{}:
		return v, true
	case func(map[string]interface{}) interface{}:
		return func(r Row) interface{} { return v(r) }, true
	default:
		return nil, false
	}
}
