package transform

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Upper returns a transform that upper-cases string values and passes every
// other value through unchanged.
func Upper() Func {
	return mapStrings(func() cases.Caser { return cases.Upper(language.Und) })
}

// Lower returns a transform that lower-cases string values and passes every
// other value through unchanged.
func Lower() Func {
	return mapStrings(func() cases.Caser { return cases.Lower(language.Und) })
}

// Title returns a transform that title-cases string values and passes every
// other value through unchanged.
func Title() Func {
	return mapStrings(func() cases.Caser { return cases.Title(language.Und) })
}

// mapStrings builds a caser per invocation; a cases.Caser may be stateful, and
// transforms have to be safe under the worker pool.
func mapStrings(newCaser func() cases.Caser) Func {
	return func(value interface{}, _ Context) (Output, error) {
		if s, ok := value.(string); ok {
			return Output{Value: newCaser().String(s)}, nil
		}
		return Output{Value: value}, nil
	}
}
