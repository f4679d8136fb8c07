package cli

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*statusFlag)(nil)
	_ pflag.Value = (*optionalFloatFlag)(nil)
	_ pflag.Value = (*optionalStringFlag)(nil)
)

// statusFlag parses pond statuses, including the legacy labels.
type statusFlag struct{ status domain.PondStatus }

func (f *statusFlag) String() string { return string(f.status) }
func (f *statusFlag) Type() string   { return "status" }

func (f *statusFlag) Set(s string) error {
	st, err := domain.ParsePondStatus(s)
	if err != nil {
		return err
	}
	f.status = st
	return nil
}

// optionalFloatFlag stays absent unless the flag is given.
type optionalFloatFlag struct{ v domain.Optional[float64] }

func (f *optionalFloatFlag) String() string {
	if v, ok := f.v.Get(); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func (f *optionalFloatFlag) Type() string { return "float" }

func (f *optionalFloatFlag) Set(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return err
	}
	f.v = domain.Some(v)
	return nil
}

type optionalStringFlag struct{ v domain.Optional[string] }

func (f *optionalStringFlag) String() string { return f.v.OrElse("") }
func (f *optionalStringFlag) Type() string   { return "string" }

func (f *optionalStringFlag) Set(s string) error {
	f.v = domain.Some(s)
	return nil
}

// anyChanged reports whether any of the named flags was set.
func anyChanged(fs *pflag.FlagSet, names ...string) bool {
	for _, n := range names {
		if fs.Changed(n) {
			return true
		}
	}
	return false
}
