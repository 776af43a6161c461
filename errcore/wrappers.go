package errcore

// Fixed-arity wrappers marshal Go-typed arguments into cells and call
// MakeError; they are implementation conveniences over the one variadic
// mechanism, not a distinct construction path.

func InvalidArg(rt *Runtime, value Cell) (*Error, error) {
	return MakeError(rt, mustCode(rt, "script", "invalid-arg"), value)
}

func InvalidType(rt *Runtime, arg Cell, expected, actual string) (*Error, error) {
	return MakeError(rt, mustCode(rt, "script", "invalid-type"), arg, StringCell(expected), StringCell(actual))
}

func OutOfRange(rt *Runtime, value Cell) (*Error, error) {
	return MakeError(rt, mustCode(rt, "script", "out-of-range"), value)
}

func NoValue(rt *Runtime, word string) (*Error, error) {
	return MakeError(rt, mustCode(rt, "script", "no-value"), WordCell(word))
}

func ArgRequired(rt *Runtime, name string) (*Error, error) {
	return MakeError(rt, mustCode(rt, "script", "arg-required"), WordCell(name))
}

func ProtectedWord(rt *Runtime, word string) (*Error, error) {
	return MakeError(rt, mustCode(rt, "script", "protected-word"), WordCell(word))
}

func NoCatch(rt *Runtime) (*Error, error) {
	return MakeError(rt, mustCode(rt, "script", "no-catch"))
}

func NoCatchNamed(rt *Runtime, name string) (*Error, error) {
	return MakeError(rt, mustCode(rt, "script", "no-catch-named"), WordCell(name))
}

func SecurityViolation(rt *Runtime, detail string) (*Error, error) {
	return MakeError(rt, mustCode(rt, "security", "security"), StringCell(detail))
}

func SecurityPolicyError(rt *Runtime, policy, action string) (*Error, error) {
	return MakeError(rt, mustCode(rt, "security", "security-error"), StringCell(policy), StringCell(action))
}

func InvalidErrorValue(rt *Runtime, detail string) (*Error, error) {
	return MakeError(rt, mustCode(rt, "internal", "invalid-error"), StringCell(detail))
}

func NoMemory(rt *Runtime, bytes int) (*Error, error) {
	return MakeError(rt, mustCode(rt, "internal", "no-memory"), IntegerCell(bytes))
}
