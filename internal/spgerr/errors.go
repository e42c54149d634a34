// Package spgerr defines the error taxonomy shared by every SPG package.
//
// It generalizes the ErrorKind-as-named-string pattern used for DER
// signature parsing errors in the teacher package into the small, fixed
// set of kinds a caller actually needs to branch on: did the operation
// fail to run at all, or did it run and say no.
package spgerr

import "fmt"

// Kind identifies the category of a failure.
type Kind string

const (
	// FAIL covers low-level arithmetic and I/O failures: a parse error on
	// a curve hex string, a failed modular inverse, a file that can't be
	// opened.
	FAIL Kind = "FAIL"

	// BadParams is returned when a caller-supplied argument is invalid on
	// its face (unknown curve name, zero-length key, mismatched paths).
	BadParams Kind = "BAD_PARAMS"

	// SignatureInvalid means verification ran to completion and the
	// signature does not check out.
	SignatureInvalid Kind = "SIGNATURE_INVALID"

	// EncryptionFailed means the symmetric/ECIES encryption pipeline
	// could not produce a ciphertext.
	EncryptionFailed Kind = "ENCRYPTION_FAILED"

	// DecryptionFailed means the pipeline ran and either the HMAC tag did
	// not match or the symmetric cipher could not be driven.
	DecryptionFailed Kind = "DECRYPTION_FAILED"

	// NotImplemented is returned for recognized-but-unsupported options,
	// such as requesting the AES symmetric cipher.
	NotImplemented Kind = "NOT_IMPLEMENTED"
)

// Error pairs a Kind with a human-readable description. It is the SPG
// equivalent of the teacher's Error{Err: kind, Description: desc}.
type Error struct {
	Kind Kind
	Desc string
}

func (e *Error) Error() string {
	return fmt.Sprintf("spg: %s: %s", e.Kind, e.Desc)
}

// New builds an *Error for the given kind with a formatted description.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Desc: fmt.Sprintf(format, args...)}
}

// Is reports whether err carries the given Kind, so callers can write
// `errors.Is(err, spgerr.Sentinel(spgerr.SignatureInvalid))`-style checks
// against a sentinel built from the kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel returns a zero-description *Error of the given kind, suitable
// for use with errors.Is as a comparison target.
func Sentinel(kind Kind) *Error {
	return &Error{Kind: kind}
}
