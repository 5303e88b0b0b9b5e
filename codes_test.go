// codes_test.go - verification for built-in codes, kinds and their mapping.
package masterror

import (
	"errors"
	"reflect"
	"testing"
)

func TestIsBuiltin_AllBuiltinCodesAreBuiltin(t *testing.T) {
	t.Parallel()

	for i, c := range BuiltinCodes() {
		if !c.IsBuiltin() {
			t.Fatalf("index=%d code=%q: expected IsBuiltin()=true", i, c)
		}
	}
}

func TestIsBuiltin_CustomAndEmptyAreNotBuiltin(t *testing.T) {
	t.Parallel()

	t.Run("custom_code", func(t *testing.T) {
		if Code("PAYMENT_DECLINED").IsBuiltin() {
			t.Fatalf("expected PAYMENT_DECLINED to be non-builtin")
		}
	})
	t.Run("empty_string", func(t *testing.T) {
		var empty Code
		if empty.IsBuiltin() {
			t.Fatalf("expected empty code to be non-builtin")
		}
	})
}

func TestBuiltinCodes_DefensiveCopy(t *testing.T) {
	t.Parallel()

	orig := BuiltinCodes()
	if len(orig) == 0 {
		t.Fatalf("BuiltinCodes() returned empty set (unexpected)")
	}
	orig[0] = Code("MUTATED")

	after := BuiltinCodes()
	if after[0] == Code("MUTATED") {
		t.Fatalf("BuiltinCodes() exposes internal slice; mutation leaked")
	}
}

func TestBuiltinCodes_Unique(t *testing.T) {
	t.Parallel()

	seen := map[Code]bool{}
	for _, c := range BuiltinCodes() {
		if seen[c] {
			t.Fatalf("duplicate builtin code %q", c)
		}
		seen[c] = true
	}
}

func TestCodeFor_EveryKindHasBuiltinMappedCode(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds() {
		c := CodeFor(k)
		if !c.IsBuiltin() {
			t.Fatalf("kind %v: code %q is not builtin", k, c)
		}
		if got := MappingFor(c).Kind; got != k {
			t.Fatalf("kind %v: mapping of %q points at %v", k, c, got)
		}
		if got := MappingFor(c).HTTPStatus; got != k.HTTPStatus() {
			t.Fatalf("kind %v: mapping status %d != kind status %d", k, got, k.HTTPStatus())
		}
	}
}

func TestCodeFor_UnknownKindIsInternal(t *testing.T) {
	t.Parallel()

	if got := CodeFor(Kind(250)); got != CodeInternal {
		t.Fatalf("CodeFor(unknown) = %q, want %q", got, CodeInternal)
	}
}

func TestParseCode(t *testing.T) {
	t.Parallel()

	valid := []string{"A", "NOT_FOUND", "HTTP2_ERROR", "X9"}
	for _, s := range valid {
		c, err := ParseCode(s)
		if err != nil || string(c) != s {
			t.Fatalf("ParseCode(%q) = %q, %v", s, c, err)
		}
	}

	invalid := []string{"", "lower", "_LEADING", "TRAILING_", "DOUBLE__UNDERSCORE", "9START", "SPACE X", "DASH-X"}
	for _, s := range invalid {
		if _, err := ParseCode(s); !errors.Is(err, ErrInvalidCode) {
			t.Fatalf("ParseCode(%q): want ErrInvalidCode, got %v", s, err)
		}
	}
}

func TestMustCode_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("MustCode(bad) did not panic")
		}
	}()
	_ = MustCode("bad code")
}

func TestKind_StringLabelStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		k      Kind
		ident  string
		label  string
		status int
	}{
		{KindNotFound, "NotFound", "Not found", 404},
		{KindValidation, "Validation", "Validation error", 422},
		{KindInvalidJWT, "InvalidJwt", "Invalid JWT", 401},
		{KindRateLimited, "RateLimited", "Rate limit exceeded", 429},
		{KindTimeout, "Timeout", "Operation timed out", 504},
		{KindExternalAPI, "ExternalApi", "External API error", 500},
		{KindDependencyUnavailable, "DependencyUnavailable", "External dependency unavailable", 503},
	}
	for _, tc := range cases {
		if tc.k.String() != tc.ident || tc.k.Label() != tc.label || tc.k.HTTPStatus() != tc.status {
			t.Fatalf("%d: got (%q, %q, %d), want (%q, %q, %d)",
				tc.k, tc.k.String(), tc.k.Label(), tc.k.HTTPStatus(), tc.ident, tc.label, tc.status)
		}
	}
}

func TestKind_Unknown(t *testing.T) {
	t.Parallel()

	k := Kind(200)
	if k.String() != "Kind(200)" {
		t.Fatalf("String() = %q", k.String())
	}
	if k.Label() != KindInternal.Label() || k.HTTPStatus() != 500 || !k.IsCritical() {
		t.Fatalf("unknown kind must behave like Internal")
	}
}

func TestKinds_DeclarationOrder(t *testing.T) {
	t.Parallel()

	got := Kinds()
	if len(got) != int(kindCount) {
		t.Fatalf("len(Kinds()) = %d, want %d", len(got), kindCount)
	}
	if !reflect.DeepEqual(got[:3], []Kind{KindNotFound, KindValidation, KindConflict}) {
		t.Fatalf("unexpected order: %v", got[:3])
	}
}
