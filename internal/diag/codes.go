// Package diag implements the compiler's diagnostics: stable per-category
// error codes rendered with source-line-and-caret context.
package diag

// Code is a stable diagnostic code. The prefix names the error category;
// the suffix is a sequence number within that category.
type Code string

const (
	// Lex/parse.
	ParUnexpectedToken Code = "PAR001"
	ParUnterminated    Code = "PAR002"
	ParExpected        Code = "PAR003"

	// Static expansion.
	ExpUnknownVersion  Code = "EXP001"
	ExpNotIterable     Code = "EXP002"
	ExpDuplicateVararg Code = "EXP003"

	// Name.
	NamUndefined       Code = "NAM001"
	NamModuleConflict  Code = "NAM002"
	NamDuplicateDecl   Code = "NAM003"

	// Cycle.
	CycDependency Code = "CYC001"

	// Type.
	TypMismatch       Code = "TYP001"
	TypLvalueRequired Code = "TYP002"
	TypInvalidCast    Code = "TYP003"
	TypAddrOfRvalue   Code = "TYP004"
	TypArgCount       Code = "TYP005"
	TypMissingDefault Code = "TYP006"

	// Static assert.
	SasFailed Code = "SAS001"

	// IR-builder contract violations: internal, always fatal,
	// assertion-class.
	IrbSealedTarget    Code = "IRB001"
	IrbDoubleFinish    Code = "IRB002"
	IrbVoidReturn      Code = "IRB003"
	IrbUnsealedPhiRead Code = "IRB004"
)

// Phase names the pipeline phase that raised a diagnostic, matching the
// ailang Report.Phase convention.
type Phase string

const (
	PhaseParse     Phase = "parse"
	PhaseExpansion Phase = "expansion"
	PhaseName      Phase = "name"
	PhaseType      Phase = "type"
	PhaseIRBuild   Phase = "ir_build"
)
