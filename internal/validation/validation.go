package validation

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/rafamonteiro/crm-backend/internal/apperror"
)

// Type selects the constraint applied to a field value.
type Type int

const (
	TypeString Type = iota
	TypeEmail
	TypeUUID
	TypePositiveInt
	TypeEnum
)

// Rule describes one accepted field of a JSON body or path parameter set.
// A schema is a plain []Rule interpreted by ParseBody/ParseParams; every
// violation is collected and reported in a single message.
type Rule struct {
	Field    string
	Type     Type
	Required bool
	Nullable bool     // JSON null is accepted and means "clear the column"
	Enum     []string // closed value set for TypeEnum
	MinLen   int      // minimum length after trim, TypeString only
	Message  string   // overrides the default format-failure message
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// OptString carries the tri-state of an optional field: absent,
// present-null, or present with a value. The distinction decides whether a
// partial update skips, clears, or sets a column.
type OptString struct {
	Present bool
	Null    bool
	Value   string
}

// OptInt is the numeric counterpart of OptString.
type OptInt struct {
	Present bool
	Null    bool
	Value   int
}

type value struct {
	null bool
	str  string
	num  int
	id   uuid.UUID
}

// Values holds the parsed fields of a request, keyed by field name.
type Values struct {
	fields map[string]value
}

// Has reports whether the field appeared in the payload, including as null.
func (v Values) Has(field string) bool {
	_, ok := v.fields[field]
	return ok
}

func (v Values) String(field string) string {
	return v.fields[field].str
}

func (v Values) Int(field string) int {
	return v.fields[field].num
}

func (v Values) UUID(field string) uuid.UUID {
	return v.fields[field].id
}

func (v Values) OptString(field string) OptString {
	val, ok := v.fields[field]
	if !ok {
		return OptString{}
	}
	return OptString{Present: true, Null: val.null, Value: val.str}
}

func (v Values) OptInt(field string) OptInt {
	val, ok := v.fields[field]
	if !ok {
		return OptInt{}
	}
	return OptInt{Present: true, Null: val.null, Value: val.num}
}

// ParseBody checks a JSON body against the schema. Unknown fields are
// ignored. All violations are joined as "field: reason; field: reason" into
// one validation error.
func ParseBody(body []byte, rules []Rule) (Values, error) {
	return parseBody(body, rules, false)
}

// ParseUpdateBody behaves like ParseBody but additionally rejects payloads
// in which none of the recognized fields appear.
func ParseUpdateBody(body []byte, rules []Rule) (Values, error) {
	return parseBody(body, rules, true)
}

func parseBody(body []byte, rules []Rule, requireOne bool) (Values, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		body = []byte("{}")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Values{}, apperror.Validation("body: invalid JSON payload")
	}

	parsed := Values{fields: map[string]value{}}
	var violations []string

	for _, rule := range rules {
		data, ok := raw[rule.Field]
		if !ok {
			if rule.Required {
				violations = append(violations, rule.Field+": required field")
			}
			continue
		}

		if isJSONNull(data) {
			if rule.Nullable {
				parsed.fields[rule.Field] = value{null: true}
				continue
			}
			if rule.Required {
				violations = append(violations, rule.Field+": required field")
			} else {
				violations = append(violations, rule.Field+": "+failureMessage(rule))
			}
			continue
		}

		val, reason := checkValue(rule, data)
		if reason != "" {
			violations = append(violations, rule.Field+": "+reason)
			continue
		}
		parsed.fields[rule.Field] = val
	}

	if requireOne && len(parsed.fields) == 0 && len(violations) == 0 {
		violations = append(violations, "body: enter at least one field to update")
	}

	if len(violations) > 0 {
		return Values{}, apperror.Validation(strings.Join(violations, "; "))
	}
	return parsed, nil
}

// ParseParams checks path parameters against the schema. Parameters are
// always strings on the wire, so numeric rules coerce from the raw segment.
func ParseParams(get func(string) string, rules []Rule) (Values, error) {
	parsed := Values{fields: map[string]value{}}
	var violations []string

	for _, rule := range rules {
		segment := get(rule.Field)
		val, reason := checkParam(rule, segment)
		if reason != "" {
			violations = append(violations, rule.Field+": "+reason)
			continue
		}
		parsed.fields[rule.Field] = val
	}

	if len(violations) > 0 {
		return Values{}, apperror.Validation(strings.Join(violations, "; "))
	}
	return parsed, nil
}

func checkValue(rule Rule, data json.RawMessage) (value, string) {
	switch rule.Type {
	case TypeString, TypeEmail, TypeUUID, TypeEnum:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return value{}, failureMessage(rule)
		}
		return checkString(rule, s)

	case TypePositiveInt:
		// Numeric strings are coerced, matching the lenient input the
		// dashboard sends for ids.
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			var s string
			if err := json.Unmarshal(data, &s); err != nil {
				return value{}, failureMessage(rule)
			}
			parsedInt, convErr := strconv.Atoi(strings.TrimSpace(s))
			if convErr != nil {
				return value{}, failureMessage(rule)
			}
			n = parsedInt
		}
		if n <= 0 {
			return value{}, failureMessage(rule)
		}
		return value{num: n}, ""
	}
	return value{}, failureMessage(rule)
}

func checkParam(rule Rule, segment string) (value, string) {
	switch rule.Type {
	case TypePositiveInt:
		n, err := strconv.Atoi(segment)
		if err != nil || n <= 0 {
			return value{}, failureMessage(rule)
		}
		return value{num: n}, ""
	default:
		return checkString(rule, segment)
	}
}

func checkString(rule Rule, s string) (value, string) {
	s = strings.TrimSpace(s)

	switch rule.Type {
	case TypeEmail:
		if !emailRe.MatchString(s) {
			return value{}, failureMessage(rule)
		}
	case TypeUUID:
		id, err := uuid.Parse(s)
		if err != nil {
			return value{}, failureMessage(rule)
		}
		return value{str: s, id: id}, ""
	case TypeEnum:
		for _, allowed := range rule.Enum {
			if s == allowed {
				return value{str: s}, ""
			}
		}
		return value{}, failureMessage(rule)
	default:
		minLen := rule.MinLen
		if minLen < 1 {
			minLen = 1
		}
		if len(s) < minLen {
			if minLen == 1 {
				return value{}, "required field"
			}
			return value{}, failureMessage(rule)
		}
	}
	return value{str: s}, ""
}

func failureMessage(rule Rule) string {
	if rule.Message != "" {
		return rule.Message
	}
	switch rule.Type {
	case TypeEmail:
		return "invalid e-mail"
	case TypeUUID:
		return "invalid ID"
	case TypePositiveInt:
		return "must be a positive integer"
	case TypeEnum:
		return "invalid value"
	}
	return "invalid value"
}

func isJSONNull(data json.RawMessage) bool {
	return strings.TrimSpace(string(data)) == "null"
}
