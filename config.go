package lisp

import "fmt"

// Config is a typed bag of interpreter tuning knobs, in the shape of
// the teacher's grammar Config (map[string]*cfgVal with assign/check
// panics on type mismatch) re-keyed for interpreter concerns instead of
// grammar-transform toggles.
type Config map[string]*cfgVal

// NewConfig returns the defaults spec.md and its ambient expansion
// call for: a 2^20 cell cap (§4.2), a 4096-byte string cap (§4.4), and
// comments/hex/octal literals enabled.
func NewConfig() *Config {
	m := make(Config)
	m.SetInt("gc.max_cells", 1<<20)
	m.SetInt("reader.max_string_len", 4096)
	m.SetBool("reader.allow_comments", true)
	m.SetBool("reader.allow_hex", true)
	m.SetBool("reader.allow_octal", true)
	m.SetBool("printer.color", false)
	m.SetBool("eval.trace", false)
	return &m
}

type cfgValType int

const (
	cfgValType_Undefined cfgValType = iota
	cfgValType_Bool
	cfgValType_Int
)

func (vt cfgValType) String() string {
	return map[cfgValType]string{
		cfgValType_Undefined: "undefined",
		cfgValType_Bool:      "bool",
		cfgValType_Int:       "int",
	}[vt]
}

type cfgVal struct {
	typ    cfgValType
	asBool bool
	asInt  int
}

func (v *cfgVal) assignType(vt cfgValType) {
	if v.typ != vt && v.typ != cfgValType_Undefined {
		panic(fmt.Sprintf("can't assign `%s` to type `%s`", vt, v.typ))
	}
	v.typ = vt
}

func (v *cfgVal) checkType(vt cfgValType) {
	if v.typ != vt {
		panic(fmt.Sprintf("can't retrieve `%s` from `%s` setting", vt, v.typ))
	}
}

func (c *Config) SetBool(path string, v bool) {
	if (*c)[path] == nil {
		(*c)[path] = &cfgVal{}
	}
	(*c)[path].assignType(cfgValType_Bool)
	(*c)[path].asBool = v
}

func (c *Config) SetInt(path string, v int) {
	if (*c)[path] == nil {
		(*c)[path] = &cfgVal{}
	}
	(*c)[path].assignType(cfgValType_Int)
	(*c)[path].asInt = v
}

func (c *Config) GetBool(path string) bool {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_Bool)
		return val.asBool
	}
	panic(fmt.Sprintf("bool setting `%s` does not exist", path))
}

func (c *Config) GetInt(path string) int {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_Int)
		return val.asInt
	}
	panic(fmt.Sprintf("int setting `%s` does not exist", path))
}
