package entity

import "go.lsp.dev/protocol"

// Results reported by the diff tools.
const (
	DiffResultSaved    = "FILE_SAVED"
	DiffResultRejected = "DIFF_REJECTED"
)

// DiffProposal is a proposed change shown to the user for review.
type DiffProposal struct {
	TabName         string `json:"tabName"`
	OldFilePath     string `json:"oldFilePath"`
	NewFilePath     string `json:"newFilePath"`
	NewFileContents string `json:"newFileContents"`
	Patch           string `json:"patch"`
}

// DiffDecision is the user's answer to a DiffProposal.
type DiffDecision struct {
	Accepted      bool
	FinalContents string
}

// OpenFileRequest asks the editor to show a file.
type OpenFileRequest struct {
	FilePath      string `json:"filePath" validate:"required"`
	Preview       bool   `json:"preview"`
	MakeFrontmost bool   `json:"makeFrontmost"`
	StartLine     int    `json:"startLine,omitempty" validate:"omitempty,gt=0"`
	EndLine       int    `json:"endLine,omitempty" validate:"omitempty,gtefield=StartLine"`
}

// FileDiagnostics groups the diagnostics of a single document.
type FileDiagnostics struct {
	URI         protocol.DocumentURI  `json:"uri"`
	Diagnostics []protocol.Diagnostic `json:"diagnostics"`
}

// OpenDiffRequest are the arguments of the openDiff tool.
type OpenDiffRequest struct {
	OldFilePath     string `json:"old_file_path" validate:"required"`
	NewFilePath     string `json:"new_file_path" validate:"required"`
	NewFileContents string `json:"new_file_contents"`
	TabName         string `json:"tab_name" validate:"required"`
}

// DiffOutcome is how a proposed diff ended.
type DiffOutcome struct {
	Result   string
	TabName  string
	Contents string
}

// ToolResult converts the outcome to the result of the openDiff tool.
func (o DiffOutcome) ToolResult() *ToolResult {
	second := o.TabName
	if o.Result == DiffResultSaved {
		second = o.Contents
	}
	return &ToolResult{Content: []Content{
		{Type: ContentTypeText, Text: o.Result},
		{Type: ContentTypeText, Text: second},
	}}
}
