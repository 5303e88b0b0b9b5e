// wrap_test.go - verification of From / Wrap / WrapField / Recode.
package masterror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gopkg.in/yaml.v3"
)

func TestFrom_Nil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, From(nil))
}

func TestFrom_AppErrorPassesThrough(t *testing.T) {
	t.Parallel()

	orig := Conflict("dup")
	assert.Same(t, orig, From(orig))
	assert.Same(t, orig, From(fmt.Errorf("ctx: %w", orig)))
}

func TestFrom_Classification(t *testing.T) {
	t.Parallel()

	var syntaxErr error = json.Unmarshal([]byte("{"), new(any))
	var typeErr error = json.Unmarshal([]byte(`{"n":"x"}`), new(struct{ N int `json:"n"` }))
	_, unsupErr := json.Marshal(math.Inf(1))
	var yamlErr error = yaml.Unmarshal([]byte("a: [1"), new(struct{ A int }))
	var yamlTypeErr error = yaml.Unmarshal([]byte("a: text"), new(struct{ A int }))
	_, numErr := strconv.Atoi("12x")
	netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	timeoutErr := &net.DNSError{Err: "i/o timeout", Name: "db", IsTimeout: true}

	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"deadline", context.DeadlineExceeded, KindTimeout},
		{"wrapped deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), KindTimeout},
		{"canceled", context.Canceled, KindService},
		{"not exist", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist}, KindNotFound},
		{"permission", os.ErrPermission, KindForbidden},
		{"json syntax", syntaxErr, KindDeserialization},
		{"json type", typeErr, KindDeserialization},
		{"json unsupported", unsupErr, KindSerialization},
		{"yaml type", yamlTypeErr, KindConfig},
		{"net", netErr, KindNetwork},
		{"net timeout", timeoutErr, KindTimeout},
		{"strconv", numErr, KindBadRequest},
		{"grpc", status.Error(codes.NotFound, "no row"), KindNotFound},
		{"grpc unavailable", status.Error(codes.Unavailable, "down"), KindDependencyUnavailable},
		{"plain", errors.New("mystery"), KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.err)
			got := From(tc.err)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Kind())
			assert.ErrorIs(t, got, tc.err, "the original error must stay reachable")
		})
	}

	// Malformed YAML is a syntax error, not a TypeError, and stays internal.
	assert.Equal(t, KindInternal, From(yamlErr).Kind())
}

func TestFrom_ClassificationFields(t *testing.T) {
	t.Parallel()

	syntaxErr := json.Unmarshal([]byte(`{"a":}`), new(any))
	off, ok := From(syntaxErr).metadata.Get("offset")
	require.True(t, ok)
	assert.Equal(t, TypeInt64, off.Type())

	_, numErr := strconv.ParseInt("abc", 10, 64)
	in, ok := From(numErr).metadata.Get("input")
	require.True(t, ok)
	assert.Equal(t, "abc", in.Str())

	typeErr := json.Unmarshal([]byte(`{"n":"x"}`), new(struct{ N int `json:"n"` }))
	field, ok := From(typeErr).metadata.Get("field")
	require.True(t, ok)
	assert.Equal(t, "n", field.Str())
}

func TestFrom_GRPCMessageKept(t *testing.T) {
	t.Parallel()

	got := From(status.Error(codes.PermissionDenied, "role missing"))
	msg, ok := got.Message()
	require.True(t, ok)
	assert.Equal(t, "role missing", msg)
	assert.Equal(t, KindForbidden, got.Kind())
}

func TestKindForGRPC_Defaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindInternal, kindForGRPC(codes.DataLoss))
	assert.Equal(t, KindConflict, kindForGRPC(codes.Aborted))
	assert.Equal(t, KindValidation, kindForGRPC(codes.FailedPrecondition))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Wrap(nil, KindDatabase, "ping"))

	cause := errors.New("refused")
	e := Wrap(cause, KindDatabase, "ping")
	require.NotNil(t, e)
	assert.Equal(t, KindDatabase, e.Kind())
	assert.Equal(t, "Database error: ping", e.Error())
	assert.ErrorIs(t, e, cause)
}

func TestWrapField(t *testing.T) {
	t.Parallel()

	assert.Nil(t, WrapField(nil, Str("k", "v")))

	e := WrapField(context.DeadlineExceeded, Str("query", "select 1"))
	assert.Equal(t, KindTimeout, e.Kind())
	v, ok := e.metadata.Get("query")
	require.True(t, ok)
	assert.Equal(t, "select 1", v.Str())
}

func TestRecode(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Recode(nil, CodeCache))

	base := NotFound("user")
	e := Recode(base, CodeUserAlreadyExists)
	assert.Equal(t, CodeUserAlreadyExists, e.Code())
	assert.Equal(t, CodeNotFound, base.Code(), "Recode must not modify its input")
}
