package quantumviz

import (
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/value"
)

// Envelope keys.
const (
	KeyGTS          = "gts"
	KeyGlobalParams = "globalParams"
)

// Normalize wraps serialized series text into an array of
// {gts, globalParams} envelopes. Text that already carries envelopes keeps
// its gts untouched; bare series become the gts of a single new envelope.
// For an envelope array the first element decides: when it has
// globalParams, params are merged into every element, otherwise every
// element gets params as fresh globalParams.
func Normalize(text string, params ParamSet) (value.Value, error) {
	out := value.Parse(text)
	switch out.Shape {
	case value.ShapeArray:
		items := out.Value.Items()
		if len(items) > 0 && isEnveloped(items[0]) {
			apply := withParams
			if _, ok := items[0].Field(KeyGlobalParams); !ok {
				apply = withFreshParams
			}
			wrapped := make([]value.Value, len(items))
			for i, item := range items {
				env, err := apply(item, params)
				if err != nil {
					return value.Value{}, err
				}
				wrapped[i] = env
			}
			return value.Sequence(wrapped...), nil
		}
		return value.Sequence(bare(out.Value, params)), nil

	case value.ShapeObject:
		if isEnveloped(out.Value) {
			env, err := withParams(out.Value, params)
			if err != nil {
				return value.Value{}, err
			}
			return value.Sequence(env), nil
		}
		return value.Sequence(bare(out.Value, params)), nil
	}
	return value.Value{}, renderErr(KindInvalidDataShape, "series is neither a JSON array nor a JSON object")
}

// NormalizeText is Normalize rendered as compact JSON.
func NormalizeText(text string, params ParamSet) (string, error) {
	v, err := Normalize(text, params)
	if err != nil {
		return "", err
	}
	s, err := value.EncodeDisplay(v)
	if err != nil {
		return "", renderErr(KindInvalidDataShape, "%v", err)
	}
	return s, nil
}

func isEnveloped(v value.Value) bool {
	if v.Kind() != value.KindMapping {
		return false
	}
	if _, ok := v.Field(KeyGlobalParams); ok {
		return true
	}
	_, ok := v.Field(KeyGTS)
	return ok
}

func withParams(env value.Value, params ParamSet) (value.Value, error) {
	if env.Kind() != value.KindMapping {
		return value.Value{}, renderErr(KindInvalidDataShape, "envelope element must be a JSON object, got %s", env.Kind())
	}
	existing, ok := env.Field(KeyGlobalParams)
	if !ok {
		return env.With(KeyGlobalParams, params.Value()), nil
	}
	if existing.Kind() != value.KindMapping {
		return value.Value{}, renderErr(KindInvalidDataShape, "globalParams must be a JSON object, got %s", existing.Kind())
	}
	return env.With(KeyGlobalParams, params.MergeInto(existing)), nil
}

func withFreshParams(env value.Value, params ParamSet) (value.Value, error) {
	if env.Kind() != value.KindMapping {
		return value.Value{}, renderErr(KindInvalidDataShape, "envelope element must be a JSON object, got %s", env.Kind())
	}
	return env.With(KeyGlobalParams, params.Value()), nil
}

func bare(gts value.Value, params ParamSet) value.Value {
	return value.NewMapping().
		Set(KeyGTS, gts).
		Set(KeyGlobalParams, params.Value()).
		Value()
}
