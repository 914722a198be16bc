package lang

// catalog holds the localized pipeline messages. Portuguese is the
// canonical catalog; the other three mirror its key set. Placeholders
// use the {name} form consumed by Format.
var catalog = map[string]map[string]string{
	"pt": {
		"auto_date":      "[SMART] Data detectada e convertida na coluna: '{col}'",
		"load_ok":        "[CARREGAR] Dados carregados: {rows} linhas x {cols} colunas.",
		"load_err":       "[ERRO] Falha ao carregar: {e}",
		"view":           "[VISUALIZAR] {header}:",
		"clean_cols":     "[LIMPEZA] Nomes das colunas padronizados.",
		"clean_txt":      "[LIMPEZA] Texto da coluna '{col}' normalizado.",
		"drop_null":      "[REMOVER] {qtd} linhas com nulos removidas.",
		"fill_null":      "[PREENCHER] Nulos preenchidos com '{val}'.",
		"date_conv":      "[DATA] Coluna '{col}' convertida para data.",
		"col_add":        "[CRIAR] Coluna '{col}' criada.",
		"filter":         "[FILTRO] '{query}': {before} -> {after} linhas.",
		"sort":           "[ORDENAR] Ordenado por {cols}.",
		"join":           "[UNIR] Tabelas unidas ({how}). Linhas: {before} -> {after}",
		"stats":          "[ESTATÍSTICAS] Resumo Estatístico:",
		"types":          "[TIPOS] Tipos de Dados:",
		"save":           "[SALVAR] Arquivo salvo em: {path}",
		"ml_start":       "[AUTO-ML] Iniciando treinamento para prever: '{target}'...",
		"ml_ignore_date": "[INFO] Ignorando colunas de data crua: {cols}",
		"ml_feats":       "Features processadas: {n} colunas (após encoding).",
		"ml_success_clf": "Modelo Classificador treinado!",
		"ml_success_reg": "Modelo Regressor treinado!",
		"ml_acc":         "Acurácia: {score}",
		"ml_r2":          "R² Score: {score}",
		"ml_saved":       "Modelo salvo em: {path}",
		"ml_tourn":       "[AUTO-ML] Avaliando {n} modelos (Linear, RF, Gradient)...",
		"ml_win":         "[RESULTADO] Melhor modelo: {name} | {metric}: {score}",
		"ml_fail":        "[ERRO] Falha no modelo {name}: {e}",
		"ia_loaded":      "[IA] Modelo carregado! Espera {n} colunas.",
		"pred_done":      "[PREVISÃO] Previsões geradas na coluna '{col}'.",
		"err_load_ia":    "Você precisa usar .carregar_ia() antes de prever!",
		"scale_ok":       "[ESCALA] Dados normalizados usando '{method}'.",
		"outlier_rem":    "[OUTLIERS] {qtd} outliers removidos (Método IQR).",
		"trans_money":    "[TRANSFORMAR] '{col}' convertida para Moeda (float).",
		"trans_num":      "[TRANSFORMAR] '{col}' limpa (apenas dígitos).",
		"trans_email":    "[TRANSFORMAR] '{col}' normalizada para E-mail.",
		"trans_err":      "[ERRO] Regra '{rule}' desconhecida ou falha.",
		"select_ok":      "[SELEÇÃO] Mantidas {n} colunas.",
		"select_warn":    "[AVISO] Colunas não encontradas e ignoradas: {cols}",
		"help_title":     "[AJUDA] Comandos disponíveis em '{lang}':",
		"log_level":      "[LOG] Sanice configurado para nível: {level}",
	},
	"en": {
		"auto_date":      "[SMART] Date detected and converted in column: '{col}'",
		"load_ok":        "[LOAD] Data loaded: {rows} rows x {cols} cols.",
		"load_err":       "[ERROR] Failed to load: {e}",
		"view":           "[VIEW] {header}:",
		"clean_cols":     "[CLEAN] Column names standardized.",
		"clean_txt":      "[CLEAN] Text in column '{col}' normalized.",
		"drop_null":      "[DROP] {qtd} rows with nulls removed.",
		"fill_null":      "[FILL] Nulls filled with '{val}'.",
		"date_conv":      "[DATE] Column '{col}' converted to datetime.",
		"col_add":        "[ADD] Column '{col}' created.",
		"filter":         "[FILTER] '{query}': {before} -> {after} rows.",
		"sort":           "[SORT] Sorted by {cols}.",
		"join":           "[JOIN] Tables merged ({how}). Rows: {before} -> {after}",
		"stats":          "[STATS] Statistical Summary:",
		"types":          "[TYPES] Data Types:",
		"save":           "[SAVE] File saved at: {path}",
		"ml_start":       "[AUTO-ML] Starting training to predict: '{target}'...",
		"ml_ignore_date": "[INFO] Ignoring raw date columns: {cols}",
		"ml_feats":       "Features processed: {n} cols (after encoding).",
		"ml_success_clf": "Classifier Model trained!",
		"ml_success_reg": "Regressor Model trained!",
		"ml_acc":         "Accuracy: {score}",
		"ml_r2":          "R² Score: {score}",
		"ml_saved":       "Model saved at: {path}",
		"ml_tourn":       "[AUTO-ML] Evaluating {n} models (Linear, RF, Gradient)...",
		"ml_win":         "[RESULT] Best model: {name} | {metric}: {score}",
		"ml_fail":        "[ERROR] Model {name} failed: {e}",
		"ia_loaded":      "[AI] Model loaded! Expects {n} columns.",
		"pred_done":      "[PREDICT] Predictions generated in column '{col}'.",
		"err_load_ia":    "You need to use .load_ai() before predicting!",
		"scale_ok":       "[SCALE] Data normalized using '{method}'.",
		"outlier_rem":    "[OUTLIERS] {qtd} outliers removed (IQR Method).",
		"trans_money":    "[TRANSFORM] '{col}' converted to Currency (float).",
		"trans_num":      "[TRANSFORM] '{col}' cleaned (digits only).",
		"trans_email":    "[TRANSFORM] '{col}' normalized to E-mail.",
		"trans_err":      "[ERROR] Rule '{rule}' unknown or failed.",
		"select_ok":      "[SELECT] Kept {n} columns.",
		"select_warn":    "[WARN] Columns not found and ignored: {cols}",
		"help_title":     "[HELP] Available commands in '{lang}':",
		"log_level":      "[LOG] Sanice verbosity set to: {level}",
	},
	"zh": {
		"auto_date":      "[智能] 检测到日期并已转换列：'{col}'",
		"load_ok":        "[加载] 数据已加载：{rows} 行 x {cols} 列。",
		"load_err":       "[错误] 加载失败：{e}",
		"view":           "[查看] {header}：",
		"clean_cols":     "[清洗] 列名已标准化。",
		"clean_txt":      "[清洗] 列 '{col}' 的文本已规范化。",
		"drop_null":      "[移除] 已移除 {qtd} 行空值。",
		"fill_null":      "[填充] 空值已填充为 '{val}'。",
		"date_conv":      "[日期] 列 '{col}' 已转换为日期格式。",
		"col_add":        "[创建] 列 '{col}' 已创建。",
		"filter":         "[过滤] '{query}': {before} -> {after} 行。",
		"sort":           "[排序] 按 {cols} 排序。",
		"join":           "[合并] 表格已合并 ({how})。行数: {before} -> {after}",
		"stats":          "[统计] 统计摘要：",
		"types":          "[类型] 数据类型：",
		"save":           "[保存] 文件已保存至：{path}",
		"ml_start":       "[自动机器学习] 开始训练预测：'{target}'...",
		"ml_ignore_date": "[信息] 忽略原始日期列：{cols}",
		"ml_feats":       "特征处理：{n} 列（编码后）。",
		"ml_success_clf": "分类模型训练完成！",
		"ml_success_reg": "回归模型训练完成！",
		"ml_acc":         "准确率：{score}",
		"ml_r2":          "R² 分数：{score}",
		"ml_saved":       "模型已保存至：{path}",
		"ml_tourn":       "[AUTO-ML] 正在评估 {n} 个模型...",
		"ml_win":         "[结果] 最佳模型: {name} ({metric}: {score})",
		"ml_fail":        "[错误] 模型 {name} 失败: {e}",
		"ia_loaded":      "[AI] 模型已加载！预期 {n} 列。",
		"pred_done":      "[预测] 预测结果已生成在 '{col}' 列。",
		"err_load_ia":    "预测前请先使用 .load_ai()！",
		"scale_ok":       "[缩放] 数据已使用 '{method}' 标准化。",
		"outlier_rem":    "[异常值] 已移除 {qtd} 个异常值 (IQR 方法)。",
		"trans_money":    "[转换] '{col}' 已转换为货币 (float)。",
		"trans_num":      "[转换] '{col}' 已清洗 (仅数字)。",
		"trans_email":    "[转换] '{col}' 已标准化为电子邮件。",
		"trans_err":      "[错误] 规则 '{rule}' 未知或失败。",
		"select_ok":      "[选择] 保留了 {n} 列。",
		"select_warn":    "[警告] 未找到并已忽略的列：{cols}",
		"help_title":     "[帮助] '{lang}' 可用命令：",
		"log_level":      "[日志] Sanice 日志级别：{level}",
	},
	"hi": {
		"auto_date":      "[SMART] '{col}' mein date mili aur convert ho gayi.",
		"load_ok":        "[LOAD] Data load ho gaya: {rows} rows x {cols} cols.",
		"load_err":       "[ERROR] Load karne mein fail: {e}",
		"view":           "[DEKHE] {header}:",
		"clean_cols":     "[SAFAI] Column ke naam standardize kiye gaye.",
		"clean_txt":      "[SAFAI] Column '{col}' ka text theek kiya gaya.",
		"drop_null":      "[HATAYE] {qtd} rows null hataye gaye.",
		"fill_null":      "[BHARE] Nulls ko '{val}' se bhara gaya.",
		"date_conv":      "[TARIKH] Column '{col}' date mein badla gaya.",
		"col_add":        "[BANAYE] Column '{col}' banaya gaya.",
		"filter":         "[FILTER] '{query}': {before} -> {after} rows.",
		"sort":           "[SORT] {cols} ke hisaab se sort kiya.",
		"join":           "[JODE] Tables jode gaye ({how}). Rows: {before} -> {after}",
		"stats":          "[STATS] Sankhyiki Saar:",
		"types":          "[TYPES] Data Types:",
		"save":           "[SAVE] File save kiya gaya: {path}",
		"ml_start":       "[AUTO-ML] Training shuru: '{target}'...",
		"ml_ignore_date": "[INFO] Raw date columns ignore kar rahe hain: {cols}",
		"ml_feats":       "Features processed: {n} cols (encoding ke baad).",
		"ml_success_clf": "Model train ho gaya (Classifier)!",
		"ml_success_reg": "Model train ho gaya (Regressor)!",
		"ml_acc":         "Accuracy: {score}",
		"ml_r2":          "R² Score: {score}",
		"ml_saved":       "Model save kiya gaya: {path}",
		"ml_tourn":       "[AUTO-ML] {n} models ka mulyankan ho raha hai...",
		"ml_win":         "[NATIJA] Behtarin model: {name} ({metric}: {score})",
		"ml_fail":        "[GALTI] Model {name} fail hua: {e}",
		"ia_loaded":      "[AI] Model load hua! {n} columns chahiye.",
		"pred_done":      "[PREDICT] Bhavishya '{col}' mein likha gaya.",
		"err_load_ia":    "Predict karne se pehle .load_ai() use karein!",
		"scale_ok":       "[SCALE] Data '{method}' se normalize kiya gaya.",
		"outlier_rem":    "[OUTLIERS] {qtd} outliers hataye gaye (IQR Method).",
		"trans_money":    "[BADLAV] '{col}' currency (float) mein badla gaya.",
		"trans_num":      "[BADLAV] '{col}' saaf kiya gaya (keval ank).",
		"trans_email":    "[BADLAV] '{col}' E-mail ke liye theek kiya gaya.",
		"trans_err":      "[ERROR] Rule '{rule}' galat hai ya fail ho gayi.",
		"select_ok":      "[CHUNNA] {n} columns rakhi gayin.",
		"select_warn":    "[CHETAVANI] Columns nahi mili aur ignore ki gayi: {cols}",
		"help_title":     "[MADAD] '{lang}' mein commands:",
		"log_level":      "[LOG] Sanice verbosity: {level}",
	},
}
