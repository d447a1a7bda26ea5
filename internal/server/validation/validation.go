// Package validation enforces the GUID format and record field
// constraints before any store mutation. It is deliberately an explicit
// per-entity function rather than a tag/reflection driven schema: the
// result is a plain field→messages map that doubles as the client-facing
// error body.
package validation

import (
	"regexp"
	"strings"

	"github.com/dmitrijs2005/guidstore/internal/server/models"
)

// Messages mirror the wording clients of the service already depend on.
const (
	MsgGUIDFormat   = "GUID must be 32 hexadecimal characters, all uppercase"
	MsgMissingField = "Missing data for required field."
	MsgUserTooShort = "Shorter than minimum length 3."
	MsgNotAnInteger = "Not a valid integer."
	MsgNotAString   = "Not a valid string."

	userMinLength = 3
	guidLength    = 32
)

var guidPattern = regexp.MustCompile(`^[0-9A-F]+$`)

// Errors maps field names to the list of problems found for that field.
// It satisfies error so it can travel through the service layer and be
// rendered directly as a 400 body.
type Errors map[string][]string

func (e Errors) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed")
	for field, msgs := range e {
		sb.WriteString("; ")
		sb.WriteString(field)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(msgs, ", "))
	}
	return sb.String()
}

// Add appends a message for a field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// ValidateGUID checks that s is exactly 32 uppercase hexadecimal
// characters. The length check runs first so the empty string fails it
// rather than the pattern.
func ValidateGUID(s string) error {
	if len(s) != guidLength || !guidPattern.MatchString(s) {
		return Errors{"guid": {MsgGUIDFormat}}
	}
	return nil
}

// ValidateRecord checks the supplied fields of a patch. With
// partial=false (create path) user is required; with partial=true
// (update path) only fields that are present are checked and absent
// fields pass through unchanged.
func ValidateRecord(patch models.RecordPatch, partial bool) error {
	errs := Errors{}

	if patch.User == nil {
		if !partial {
			errs.Add("user", MsgMissingField)
		}
	} else if len(*patch.User) < userMinLength {
		errs.Add("user", MsgUserTooShort)
	}

	// Expire arrives already typed as an integer; nothing further to
	// check here. Type mismatches are reported at the decoding layer.

	if len(errs) > 0 {
		return errs
	}
	return nil
}
