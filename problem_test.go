package masterror

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewProblem_Basic(t *testing.T) {
	t.Parallel()

	p := NewProblem(NotFound("user 42 not found").WithField(Str("user_id", "42")))

	assert.Equal(t, "https://errors.masterror.rs/not-found", p.Type)
	assert.Equal(t, "Not found", p.Title)
	assert.Equal(t, 404, p.Status)
	assert.Equal(t, "user 42 not found", p.Detail)
	assert.Equal(t, CodeNotFound, p.Code)
	require.NotNil(t, p.GRPC)
	assert.Equal(t, codes.NotFound, *p.GRPC)
	v, ok := p.Metadata.Get("user_id")
	require.True(t, ok)
	assert.Equal(t, "42", v.Str())
}

func TestNewProblem_JSONShape(t *testing.T) {
	t.Parallel()

	p := NewProblem(Validation("email invalid").
		WithField(Str("field", "email")).
		WithField(Str("value", "x@y").WithRedaction(Redact)).
		WithRetryAfterSecs(9))

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	want := map[string]any{
		"type":     "https://errors.masterror.rs/validation",
		"title":    "Validation error",
		"status":   float64(422),
		"detail":   "email invalid",
		"code":     "VALIDATION",
		"grpc":     float64(codes.InvalidArgument),
		"metadata": map[string]any{"field": "email"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("problem JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestNewProblem_RedactableDropsDetail(t *testing.T) {
	t.Parallel()

	p := NewProblem(Internal("db password is hunter2").Redactable())
	assert.Empty(t, p.Detail)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hunter2")
	assert.NotContains(t, string(raw), `"detail"`)
}

func TestNewProblem_MissingMessageUsesLabel(t *testing.T) {
	t.Parallel()

	p := NewProblem(Bare(KindTimeout))
	assert.Equal(t, "Operation timed out", p.Detail)
	assert.Equal(t, 504, p.Status)
}

func TestNewProblem_HashedAndMaskedFields(t *testing.T) {
	t.Parallel()

	e := Forbidden("nope").
		WithField(Str("email", "a@b.c").WithRedaction(Hash)).
		WithField(Str("card", "5555444433332222")).
		RedactField("card", Last4)

	p := NewProblem(e)
	email, ok := p.Metadata.Get("email")
	require.True(t, ok)
	assert.Len(t, email.Str(), 64)
	assert.NotEqual(t, "a@b.c", email.Str())
	card, _ := p.Metadata.Get("card")
	assert.Equal(t, "************2222", card.Str())
}

func TestNewProblem_CustomCodeFallsBackToInternalMapping(t *testing.T) {
	t.Parallel()

	p := NewProblem(Conflict("dup").WithCode(MustCode("PAYMENT_DECLINED")))
	assert.Equal(t, MustCode("PAYMENT_DECLINED"), p.Code)
	assert.Equal(t, 409, p.Status, "status follows the kind")
	assert.Equal(t, "https://errors.masterror.rs/internal", p.Type)
	assert.Equal(t, codes.Internal, *p.GRPC)
}

func TestNewProblem_NilIsInternal(t *testing.T) {
	t.Parallel()

	p := NewProblem(nil)
	assert.Equal(t, 500, p.Status)
	assert.Equal(t, CodeInternal, p.Code)
}

func TestNewProblem_DoesNotModifyError(t *testing.T) {
	t.Parallel()

	e := Validation("x").WithField(Str("a", "1").WithRedaction(Hash))
	_ = NewProblem(e)
	f, _ := e.metadata.Field("a")
	assert.Equal(t, "1", f.Value().Str())
	assert.Equal(t, Hash, f.Redaction())
}

func TestMappingFor_Table(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code   Code
		status int
		grpc   codes.Code
	}{
		{CodeUserAlreadyExists, 409, codes.AlreadyExists},
		{CodeRateLimited, 429, codes.ResourceExhausted},
		{CodeTimeout, 504, codes.DeadlineExceeded},
		{CodeDependencyUnavailable, 503, codes.Unavailable},
		{CodeExternalAPI, 500, codes.Unavailable},
		{CodeInvalidJWT, 401, codes.Unauthenticated},
	}
	for _, tc := range cases {
		m := MappingFor(tc.code)
		assert.Equalf(t, tc.status, m.HTTPStatus, "%s status", tc.code)
		assert.Equalf(t, tc.grpc, m.GRPC, "%s grpc", tc.code)
	}
	for _, c := range BuiltinCodes() {
		_, ok := codeMappings[c]
		assert.Truef(t, ok, "builtin code %s has no mapping", c)
	}
}

func TestGRPCStatus(t *testing.T) {
	t.Parallel()

	e := RateLimited("slow down")
	assert.Equal(t, codes.ResourceExhausted, status.Code(e))

	assert.Equal(t, "slow down", status.Convert(e).Message())

	wrapped := fmt.Errorf("handler: %w", e)
	st, ok := status.FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, codes.ResourceExhausted, st.Code())

	red := Internal("secret").Redactable()
	assert.Equal(t, "Internal server error", red.GRPCStatus().Message())
}

func TestGRPCStatus_RoundTripThroughFrom(t *testing.T) {
	t.Parallel()

	stErr := NotFound("gone").GRPCStatus().Err()
	back := From(stErr)
	assert.Equal(t, KindNotFound, back.Kind())
	msg, _ := back.Message()
	assert.Equal(t, "gone", msg)
	assert.ErrorIs(t, back, stErr)
}

func TestProblemMetadata_MarshalOrdered(t *testing.T) {
	t.Parallel()

	pm := ProblemMetadata{
		{Name: "z", Value: Int64Value(1)},
		{Name: "a", Value: BoolValue(false)},
	}
	raw, err := json.Marshal(pm)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":false}`, string(raw))
}

func TestNewProblem_Details(t *testing.T) {
	t.Parallel()

	e := Validation("bad payload").WithDetailsJSON(json.RawMessage(`{ "fields": ["email", "age"] }`))
	p := NewProblem(e)
	assert.JSONEq(t, `{"fields":["email","age"]}`, string(p.Details))

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"details":{"fields":["email","age"]}`)

	text := NewProblem(BadRequest("x").WithDetailsText("line 3: unexpected token"))
	assert.Equal(t, `"line 3: unexpected token"`, string(text.Details))
}

func TestNewProblem_RedactableDropsDetails(t *testing.T) {
	t.Parallel()

	e := Internal("x").WithDetailsText("account 42 holds 1000 EUR").Redactable()
	p := NewProblem(e)
	assert.Nil(t, p.Details)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "1000 EUR")
	assert.NotContains(t, string(raw), `"details"`)

	// The payload is still there for in-process callers.
	d, ok := e.Details()
	require.True(t, ok)
	assert.Equal(t, `"account 42 holds 1000 EUR"`, string(d))
}

func TestWithDetails_Marshal(t *testing.T) {
	t.Parallel()

	base := Conflict("version mismatch")
	e, err := base.WithDetails(map[string]int{"expected": 3, "actual": 4})
	require.NoError(t, err)
	d, ok := e.Details()
	require.True(t, ok)
	assert.JSONEq(t, `{"expected":3,"actual":4}`, string(d))
	_, ok = base.Details()
	assert.False(t, ok, "receiver gained details")

	same, err := base.WithDetails(make(chan int))
	require.Error(t, err)
	assert.Same(t, base, same)
	var ae *AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindBadRequest, ae.Kind())
	assert.Equal(t, "Bad request: failed to serialize details", ae.Error())
}

func TestWithDetailsJSON_InvalidStoredAsString(t *testing.T) {
	t.Parallel()

	d, ok := Internal("x").WithDetailsJSON(json.RawMessage(`{oops`)).Details()
	require.True(t, ok)
	assert.Equal(t, `"{oops"`, string(d))
}
