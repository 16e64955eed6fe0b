// Package exitcode provides standardized exit codes for cwt
package exitcode

// Exit codes for the cwt CLI
const (
	Success         = 0
	GeneralError    = 1
	ConfigError     = 2
	FileSystemError = 4
	PermissionError = 6
	// PartialFailure means the batch ran but at least one target file failed.
	PartialFailure = 10
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case FileSystemError:
		return "File system error"
	case PermissionError:
		return "Permission error"
	case PartialFailure:
		return "Partial failure"
	default:
		return "Unknown error"
	}
}
