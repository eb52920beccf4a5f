package validate

import (
	"regexp"
	"strings"
)

// Rule checks a single field value. Check returns true when the value is
// acceptable; Message is reported when it is not.
type Rule struct {
	Check   func(value string) bool
	Message string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required rejects empty and whitespace-only values.
func Required(message string) Rule {
	return Rule{
		Check:   func(v string) bool { return strings.TrimSpace(v) != "" },
		Message: message,
	}
}

// MinLength rejects values shorter than n characters.
func MinLength(n int, message string) Rule {
	return Rule{
		Check:   func(v string) bool { return len([]rune(strings.TrimSpace(v))) >= n },
		Message: message,
	}
}

// MaxLength rejects values longer than n characters.
func MaxLength(n int, message string) Rule {
	return Rule{
		Check:   func(v string) bool { return len([]rune(v)) <= n },
		Message: message,
	}
}

// Email rejects values that do not look like an email address.
func Email(message string) Rule {
	return Rule{
		Check:   func(v string) bool { return emailPattern.MatchString(v) },
		Message: message,
	}
}

// Pattern rejects values that do not match re.
func Pattern(re *regexp.Regexp, message string) Rule {
	return Rule{
		Check:   func(v string) bool { return re.MatchString(v) },
		Message: message,
	}
}
