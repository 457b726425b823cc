package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rafamonteiro/crm-backend/internal/apperror"
)

var bodyRules = []Rule{
	{Field: "name", Type: TypeString, Required: true},
	{Field: "email", Type: TypeEmail, Nullable: true},
	{Field: "status", Type: TypeEnum, Enum: []string{"HOT", "WARM", "COLD"}},
	{Field: "leadOriginId", Type: TypePositiveInt, Nullable: true,
		Message: "lead origin ID must be a positive integer"},
}

func requireValidation(t *testing.T, err error) *apperror.Error {
	t.Helper()
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperror.KindValidation, appErr.Kind)
	return appErr
}

func TestParseBodyTrimsAndTypes(t *testing.T) {
	t.Parallel()

	vals, err := ParseBody([]byte(`{"name":"  Acme  ","email":"sales@acme.com","status":"HOT","leadOriginId":"7"}`), bodyRules)
	require.NoError(t, err)
	require.Equal(t, "Acme", vals.String("name"))
	require.Equal(t, "sales@acme.com", vals.String("email"))
	require.Equal(t, "HOT", vals.String("status"))
	require.Equal(t, 7, vals.Int("leadOriginId"))
}

func TestParseBodyMissingRequired(t *testing.T) {
	t.Parallel()

	_, err := ParseBody([]byte(`{}`), bodyRules)
	appErr := requireValidation(t, err)
	require.Equal(t, "name: required field", appErr.Message)
}

func TestParseBodyBlankRequired(t *testing.T) {
	t.Parallel()

	_, err := ParseBody([]byte(`{"name":"   "}`), bodyRules)
	appErr := requireValidation(t, err)
	require.Equal(t, "name: required field", appErr.Message)
}

func TestParseBodyJoinsViolations(t *testing.T) {
	t.Parallel()

	_, err := ParseBody([]byte(`{"name":"","email":"nope","status":"TEPID"}`), bodyRules)
	appErr := requireValidation(t, err)
	require.Equal(t, "name: required field; email: invalid e-mail; status: invalid value", appErr.Message)
}

func TestParseBodyNullHandling(t *testing.T) {
	t.Parallel()

	// Nullable fields record an explicit null; non-nullable ones reject it.
	vals, err := ParseBody([]byte(`{"name":"Acme","email":null}`), bodyRules)
	require.NoError(t, err)
	email := vals.OptString("email")
	require.True(t, email.Present)
	require.True(t, email.Null)

	_, err = ParseBody([]byte(`{"name":"Acme","status":null}`), bodyRules)
	requireValidation(t, err)

	_, err = ParseBody([]byte(`{"name":null}`), bodyRules)
	appErr := requireValidation(t, err)
	require.Equal(t, "name: required field", appErr.Message)
}

func TestParseBodyAbsentVersusNull(t *testing.T) {
	t.Parallel()

	vals, err := ParseBody([]byte(`{"name":"Acme"}`), bodyRules)
	require.NoError(t, err)
	require.False(t, vals.Has("email"))
	require.False(t, vals.OptString("email").Present)
}

func TestParseBodyPositiveIntCoercion(t *testing.T) {
	t.Parallel()

	vals, err := ParseBody([]byte(`{"name":"Acme","leadOriginId":12}`), bodyRules)
	require.NoError(t, err)
	require.Equal(t, 12, vals.Int("leadOriginId"))

	for _, raw := range []string{`0`, `-3`, `1.5`, `"abc"`, `true`} {
		_, err := ParseBody([]byte(`{"name":"Acme","leadOriginId":`+raw+`}`), bodyRules)
		appErr := requireValidation(t, err)
		require.Equal(t, "leadOriginId: lead origin ID must be a positive integer", appErr.Message)
	}
}

func TestParseBodyInvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := ParseBody([]byte(`{"name":`), bodyRules)
	requireValidation(t, err)
}

func TestParseBodyEmptyBodyActsAsEmptyObject(t *testing.T) {
	t.Parallel()

	_, err := ParseBody(nil, bodyRules)
	appErr := requireValidation(t, err)
	require.Equal(t, "name: required field", appErr.Message)
}

func TestParseUpdateBodyRequiresOneField(t *testing.T) {
	t.Parallel()

	updateRules := []Rule{
		{Field: "name", Type: TypeString},
		{Field: "email", Type: TypeEmail, Nullable: true},
	}

	_, err := ParseUpdateBody([]byte(`{}`), updateRules)
	appErr := requireValidation(t, err)
	require.Equal(t, "body: enter at least one field to update", appErr.Message)

	// Unrecognized fields do not count.
	_, err = ParseUpdateBody([]byte(`{"unknown":"x"}`), updateRules)
	requireValidation(t, err)

	// A single null on a nullable field does.
	vals, err := ParseUpdateBody([]byte(`{"email":null}`), updateRules)
	require.NoError(t, err)
	require.True(t, vals.OptString("email").Null)
}

func TestParseParams(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		{Field: "companyId", Type: TypeUUID, Message: "invalid company ID"},
		{Field: "leadId", Type: TypePositiveInt, Message: "lead ID must be a positive integer"},
	}

	companyID := uuid.New()
	get := func(name string) string {
		if name == "companyId" {
			return companyID.String()
		}
		return "15"
	}

	vals, err := ParseParams(get, rules)
	require.NoError(t, err)
	require.Equal(t, companyID, vals.UUID("companyId"))
	require.Equal(t, 15, vals.Int("leadId"))

	bad := func(name string) string {
		if name == "companyId" {
			return "not-a-uuid"
		}
		return "zero"
	}
	_, err = ParseParams(bad, rules)
	appErr := requireValidation(t, err)
	require.Equal(t, "companyId: invalid company ID; leadId: lead ID must be a positive integer", appErr.Message)
}
