package grammar

// Program is the textual DSL's top-level production: "program { stmt* }".
type Program struct {
	Stmts []*Stmt `"program" "{" @@* "}"`
}

// Stmt is the sum over the seven DSL node shapes spec.md §3 names.
type Stmt struct {
	Seq        *SeqStmt        `  @@`
	IfImpurity *IfImpurityStmt `| @@`
	IfModels   *IfModelsStmt   `| @@`
	BestSplit  *BestSplitStmt  `| @@`
	Filter     *FilterStmt     `| @@`
	Summary    *SummaryStmt    `| @@`
	Return     *ReturnStmt     `| @@`
}

// SeqStmt is an explicit nested block: "sequence { stmt* }".
type SeqStmt struct {
	Stmts []*Stmt `"sequence" "{" @@* "}"`
}

// IfImpurityStmt is "if impurity = 0 { stmt* } else { stmt* }".
type IfImpurityStmt struct {
	Then []*Stmt `"if" "impurity" "=" "0" "{" @@* "}"`
	Else []*Stmt `"else" "{" @@* "}"`
}

// IfModelsStmt is "if x models phi { stmt* } else { stmt* }".
type IfModelsStmt struct {
	Then []*Stmt `"if" "x" "models" "phi" "{" @@* "}"`
	Else []*Stmt `"else" "{" @@* "}"`
}

// BestSplitStmt is "best_split;".
type BestSplitStmt struct {
	Marker string `@"best_split" ";"`
}

// FilterStmt is "filter +;" or "filter -;".
type FilterStmt struct {
	Polarity string `"filter" @("+" | "-") ";"`
}

// SummaryStmt is "summary;".
type SummaryStmt struct {
	Marker string `@"summary" ";"`
}

// ReturnStmt is "return;".
type ReturnStmt struct {
	Marker string `@"return" ";"`
}
