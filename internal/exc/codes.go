package exc

const (
	CodeUnknownFatal          = "D0000"
	CodeFileNotFound          = "D0001"
	CodeUnsupportedFileFormat = "D0002"
	CodeLexicalMismatch       = "D0003"
	CodeUnterminatedConstruct = "D0004"
	CodeUnsupportedElement    = "D0005"
	CodeUnexpectedEOF         = "D0006"
	CodeInvalidNumber         = "D0007"
	CodeMalformedEntry        = "D0008"
	CodePermissionDenied      = "D0009"
)

var (
	defaultNonFatal = map[string]bool{}
)
