package errcore

// Exit statuses for the CLI/process surface.
const (
	ExitHalt           = 128 + 6 // 128+signal-style code for an uncaught halt
	ExitSecurityQuit   = 101
	ExitGenericFailure = 1
)

// ExitStatus converts a quit/exit value to an OS exit status: an integer
// converts to its low 32 bits, a blank/nil value is 0, an *Error converts
// to its code (or ExitGenericFailure if blank), and anything else is 1.
func ExitStatus(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		return int(int32(x))
	case int32:
		return int(x)
	case int64:
		return int(int32(x))
	case *Error:
		if x == nil {
			return 0
		}
		if x.HasCode() {
			return *x.Code
		}
		return ExitGenericFailure
	case Cell:
		switch x.Kind {
		case KindBlank, KindNone:
			return 0
		case KindInteger:
			if n, ok := x.Payload.(int); ok {
				return int(int32(n))
			}
		}
		return ExitGenericFailure
	default:
		return ExitGenericFailure
	}
}
