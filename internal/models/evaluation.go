package models

// PromptEvaluation holds the size metrics and validation outcome computed
// for one rendered prompt. It is recomputed on every generate action and
// never persisted.
type PromptEvaluation struct {
	Tokens         int      `json:"tokens"`
	Chars          int      `json:"chars"`
	IsValid        bool     `json:"isValid"`
	Warnings       []string `json:"warnings"`
	Errors         []string `json:"errors"`
	IsWithinLimits bool     `json:"isWithinLimits"`
}
