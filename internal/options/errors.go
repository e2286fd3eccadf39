package options

import "errors"

// ErrValidation marks every option validation failure.
var ErrValidation = errors.New("invalid options")

// Rule names the cross-option rule a ValidationError reports.
type Rule string

const (
	RuleChunkJobsRequiresCluster Rule = "chunk-jobs-requires-cluster"
	RuleSGEArrayRequiresCluster  Rule = "sge-array-requires-cluster"
	RuleOutputDirRequired        Rule = "output-dir-required"
	RuleReadLenRequired          Rule = "read-len-required"
	RuleInvalidArity             Rule = "invalid-arity"
	RuleInvalidValue             Rule = "invalid-value"
)

// ValidationError reports a rejected option combination.
type ValidationError struct {
	Rule    Rule
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets callers match any validation failure with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(rule Rule, message string) error {
	return &ValidationError{Rule: rule, Message: message}
}

// RuleOf returns the rule tag carried by err, or "" when err is not a
// ValidationError.
func RuleOf(err error) Rule {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Rule
	}
	return ""
}
