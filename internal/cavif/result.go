package cavif

import "fmt"

// Kind classifies how a conversion ended.
type Kind int

const (
	// Unknown is the zero Kind, carried by a Result that was never resolved.
	Unknown Kind = iota
	// Succeeded means the encoder exited with status 0.
	Succeeded
	// EncoderFailed means the encoder ran but exited non-zero (or was killed).
	EncoderFailed
	// LaunchFailed means the encoder process could not be started.
	LaunchFailed
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Succeeded:
		return "succeeded"
	case EncoderFailed:
		return "encoder_failed"
	case LaunchFailed:
		return "launch_failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText renders the kind using its String form.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the String form produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "unknown":
		*k = Unknown
	case "succeeded":
		*k = Succeeded
	case "encoder_failed":
		*k = EncoderFailed
	case "launch_failed":
		*k = LaunchFailed
	default:
		return fmt.Errorf("unknown result kind %q", text)
	}
	return nil
}

// Result is the outcome of a single conversion.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
	// ExitCode is the encoder exit status, or -1 when it never ran or the
	// status is unavailable.
	ExitCode int `json:"exit_code"`
}

func succeededResult(message string) Result {
	return Result{Success: true, Message: message, Kind: Succeeded}
}

func encoderFailedResult(message string, exitCode int) Result {
	return Result{Message: message, Kind: EncoderFailed, ExitCode: exitCode}
}

func launchFailedResult(err error) Result {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Result{Message: msg, Kind: LaunchFailed, ExitCode: -1}
}
