package options

import (
	"errors"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"pgregory.net/rapid"
)

func storageContract() *Resolver {
	return NewResolver("Storage").
		SetDefined("code", "name").
		SetRequired("code").
		SetValidation("code", "max=8")
}

func TestResolveAcceptsDeclaredOptions(t *testing.T) {
	input := map[string]any{"code": "MAIN", "name": "Main storage"}

	out, err := storageContract().Resolve(input)
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(out, input))
}

func TestResolveRejectsUnknownOption(t *testing.T) {
	_, err := storageContract().Resolve(map[string]any{"code": "A", "zzz": 1, "aaa": 2})

	var unknown *UnknownOptionError
	assert.Assert(t, errors.As(err, &unknown))
	assert.Check(t, is.DeepEqual(unknown.Options, []string{"aaa", "zzz"}))
	assert.Check(t, is.DeepEqual(unknown.Defined, []string{"code", "name"}))
	assert.Check(t, is.ErrorContains(err, `unknown option(s) "aaa", "zzz"`))
}

func TestResolveRejectsMissingRequired(t *testing.T) {
	_, err := storageContract().Resolve(map[string]any{"name": "no code"})

	var missing *MissingRequiredOptionError
	assert.Assert(t, errors.As(err, &missing))
	assert.Check(t, is.DeepEqual(missing.Options, []string{"code"}))
}

func TestResolveUnknownCheckedBeforeMissing(t *testing.T) {
	_, err := storageContract().Resolve(map[string]any{"bogus": true})

	var unknown *UnknownOptionError
	assert.Check(t, errors.As(err, &unknown))
}

func TestResolveFillsDeclaredDefaults(t *testing.T) {
	r := NewResolver("Category").
		SetRequired("name", "displayed").
		SetDefault("displayed", true)

	input := map[string]any{"name": "Shoes"}
	out, err := r.Resolve(input)
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(out, map[string]any{"name": "Shoes", "displayed": true}))
	assert.Check(t, is.Len(input, 1), "input must not be modified")

	out, err = r.Resolve(map[string]any{"name": "Shoes", "displayed": false})
	assert.NilError(t, err)
	assert.Check(t, is.Equal(out["displayed"], false))
}

func TestResolveRunsValidationTags(t *testing.T) {
	_, err := storageContract().Resolve(map[string]any{"code": "WAY-TOO-LONG"})

	var invalid *InvalidOptionError
	assert.Assert(t, errors.As(err, &invalid))
	assert.Check(t, is.Equal(invalid.Option, "code"))
	assert.Check(t, is.Equal(invalid.Tag, "max=8"))
	assert.Check(t, invalid.Unwrap() != nil)
}

func TestValidationTagsApplyToTextForm(t *testing.T) {
	out, err := storageContract().Resolve(map[string]any{"code": 100})
	assert.NilError(t, err, "max limits length, not magnitude")
	assert.Check(t, is.Equal(out["code"], 100))

	_, err = storageContract().Resolve(map[string]any{"code": 123456789})
	var invalid *InvalidOptionError
	assert.Assert(t, errors.As(err, &invalid))
	assert.Check(t, is.Equal(invalid.Value, any(123456789)))

	r := NewResolver("Category").SetValidation("sequence", "numeric")
	_, err = r.Resolve(map[string]any{"sequence": 3})
	assert.NilError(t, err)
	_, err = r.Resolve(map[string]any{"sequence": "3rd"})
	assert.Check(t, errors.As(err, &invalid))
}

func TestText(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"A", "A"},
		{true, "true"},
		{100, "100"},
		{int64(-7), "-7"},
		{2.5, "2.5"},
		{time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC), "2024-03-01"},
	}
	for _, tc := range cases {
		assert.Check(t, is.Equal(Text(tc.in), tc.want))
	}
}

func TestValidateFunction(t *testing.T) {
	out, err := Validate("Storage", []string{"code", "name"}, []string{"code"}, map[string]any{"code": "A"})
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(out, map[string]any{"code": "A"}))

	_, err = Validate("Storage", []string{"code"}, []string{"code"}, map[string]any{})
	var missing *MissingRequiredOptionError
	assert.Check(t, errors.As(err, &missing))
}

func TestContractIntrospection(t *testing.T) {
	r := storageContract()
	assert.Check(t, is.Equal(r.Kind(), "Storage"))
	assert.Check(t, r.IsDefined("name"))
	assert.Check(t, !r.IsRequired("name"))
	assert.Check(t, r.IsRequired("code"))
	assert.Check(t, is.DeepEqual(r.Required(), []string{"code"}))
}

var optionName = rapid.StringMatching(`[a-z][a-zA-Z]{0,10}`)

func TestPropertyUnknownKeyAlwaysRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		defined := rapid.SliceOfDistinct(optionName, func(s string) string { return s }).Draw(t, "defined")
		extra := optionName.Filter(func(s string) bool {
			for _, d := range defined {
				if d == s {
					return false
				}
			}
			return true
		}).Draw(t, "extra")

		input := map[string]any{extra: "x"}
		for _, d := range defined {
			input[d] = d
		}

		_, err := Validate("Generated", defined, nil, input)
		var unknown *UnknownOptionError
		if !errors.As(err, &unknown) {
			t.Fatalf("expected UnknownOptionError for %q, got %v", extra, err)
		}
		if len(unknown.Options) != 1 || unknown.Options[0] != extra {
			t.Fatalf("unexpected unknown options %v", unknown.Options)
		}
	})
}

func TestPropertyMissingRequiredAlwaysRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		required := rapid.SliceOfNDistinct(optionName, 1, 8, func(s string) string { return s }).Draw(t, "required")
		dropped := rapid.SampledFrom(required).Draw(t, "dropped")

		input := map[string]any{}
		for _, r := range required {
			if r != dropped {
				input[r] = 1
			}
		}

		_, err := Validate("Generated", nil, required, input)
		var missing *MissingRequiredOptionError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingRequiredOptionError for %q, got %v", dropped, err)
		}
	})
}
