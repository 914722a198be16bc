// Package lang holds the multilingual surface of sanice: the localized
// message catalog the pipeline logs from, and the alias table that maps
// every supported spelling of an operation back to its canonical
// (Portuguese) name.
//
// Portuguese is the canonical language. English is the fallback for a
// missing key or an unknown language code.
package lang

import (
	"fmt"
	"sort"
	"strings"
)

// Supported language codes, in catalog order.
var languages = []string{"pt", "en", "zh", "hi"}

// Args carries the named placeholder values for Format.
type Args map[string]interface{}

// currencyByLang is the default currency code per language profile.
var currencyByLang = map[string]string{
	"pt": "BRL",
	"en": "USD",
	"zh": "CNY",
	"hi": "INR",
}

// Supported returns the language codes sanice ships messages for.
func Supported() []string {
	out := make([]string, len(languages))
	copy(out, languages)
	return out
}

// IsSupported reports whether code is a known language profile.
func IsSupported(code string) bool {
	_, ok := currencyByLang[code]
	return ok
}

// DefaultCurrency returns the currency code associated with a language
// profile. Unknown languages default to USD.
func DefaultCurrency(lang string) string {
	if c, ok := currencyByLang[lang]; ok {
		return c
	}
	return "USD"
}

// Message returns the raw catalog entry for key in the given language.
// A missing key or unknown language falls back to English; a key absent
// from every catalog returns the empty string.
func Message(lang, key string) string {
	if m, ok := catalog[lang]; ok {
		if msg, ok := m[key]; ok {
			return msg
		}
	}
	return catalog["en"][key]
}

// Format renders the catalog entry for key, substituting {name}
// placeholders with the values in args.
func Format(lang, key string, args Args) string {
	msg := Message(lang, key)
	for name, value := range args {
		msg = strings.ReplaceAll(msg, "{"+name+"}", fmt.Sprint(value))
	}
	return msg
}

// aliases maps each canonical (Portuguese) operation name to its
// English, Chinese and Hindi spellings, in that order.
var aliases = map[string][3]string{
	"corrigir_colunas":   {"fix_columns", "修正列名", "column_sudhare"},
	"limpar_texto":       {"clean_text", "清洗文本", "text_safai"},
	"remover_nulos":      {"remove_nulls", "移除空值", "null_hataye"},
	"converter_data":     {"convert_date", "转换日期", "date_badlo"},
	"criar_coluna":       {"create_column", "创建列", "column_banaye"},
	"filtrar":            {"filter_data", "过滤数据", "filter_kare"},
	"ordenar":            {"sort_data", "排序数据", "sort_kare"},
	"unir":               {"join_data", "合并数据", "jode"},
	"resumo_estatistico": {"stats_summary", "统计摘要", "stats_dekhe"},
	"salvar":             {"save_file", "保存文件", "save_kare"},
	"auto_ml":            {"train_automl", "自动训练", "automl_kare"},
	"carregar_ia":        {"load_ai", "加载模型", "ai_load_kare"},
	"prever":             {"predict", "预测", "bhavishya_bataye"},
	"ver":                {"view", "查看", "dekhe"},
	"ajuda":              {"help", "帮助", "madad"},
	"agrupar":            {"group_by", "分组", "samuh_banaye"},
	"tabela_dinamica":    {"pivot_table", "透视表", "pivot_table"},
	"matriz_correlacao":  {"correlation_matrix", "相关矩阵", "sambandh_matrix"},
	"tratar_outliers":    {"handle_outliers", "处理异常值", "outliers_hataye"},
	"escalonar":          {"scale_data", "数据缩放", "scale_kare"},
	"transformar":        {"transform", "数据转换", "badlav_kare"},
	"configurar_logs":    {"configure_logs", "配置日志", "log_set_kare"},
	"selecionar_colunas": {"select_columns", "选择列", "columns_chunne"},
	"pegar_dataframe":    {"get_dataframe", "获取数据", "data_lo"},
}

// resolveIndex is built once from aliases and maps every spelling in
// every language back to its canonical name.
var resolveIndex = buildResolveIndex()

func buildResolveIndex() map[string]string {
	idx := make(map[string]string, len(aliases)*4)
	for canonical, alts := range aliases {
		idx[canonical] = canonical
		for _, alt := range alts {
			idx[alt] = canonical
		}
	}
	return idx
}

// Resolve maps any registered spelling of an operation, in any
// supported language, back to the canonical name.
func Resolve(name string) (string, bool) {
	canonical, ok := resolveIndex[strings.TrimSpace(name)]
	return canonical, ok
}

// Commands lists the operation spellings for a language profile, sorted
// alphabetically. Unknown languages get the English spellings.
func Commands(lang string) []string {
	idx := langIndex(lang)
	out := make([]string, 0, len(aliases))
	for canonical, alts := range aliases {
		if idx < 0 {
			out = append(out, canonical)
		} else {
			out = append(out, alts[idx])
		}
	}
	sort.Strings(out)
	return out
}

// Canonicals lists the canonical operation names, sorted alphabetically.
func Canonicals() []string {
	out := make([]string, 0, len(aliases))
	for canonical := range aliases {
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}

// AliasRow returns the pt/en/zh/hi spellings for a canonical name.
func AliasRow(canonical string) ([4]string, bool) {
	alts, ok := aliases[canonical]
	if !ok {
		return [4]string{}, false
	}
	return [4]string{canonical, alts[0], alts[1], alts[2]}, true
}

// langIndex returns the column of a language inside the alias table,
// or -1 for Portuguese (the key column).
func langIndex(lang string) int {
	switch lang {
	case "pt":
		return -1
	case "zh":
		return 1
	case "hi":
		return 2
	default:
		return 0
	}
}
