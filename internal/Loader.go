package internal

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	lua "github.com/yuin/gopher-lua"

	"lspsnap/internal/hostenv"
)

// Loader evaluates configuration modules one at a time, each in a fresh
// Lua state with the emulated host environment installed. The
// environment is an explicit dependency so tests can substitute their
// own.
type Loader struct {
	dir string
	env *hostenv.Env
}

func NewLoader(dir string, env *hostenv.Env) *Loader {
	return &Loader{
		dir: dir,
		env: env,
	}
}

// Path returns the on-disk location of the named module.
func (l *Loader) Path(name string) string {
	return filepath.Join(l.dir, name+".lua")
}

// Load evaluates the named module and returns the value it produced.
// Every failure mode of evaluation, including panics escaping the VM,
// comes back as an error carrying the module name so one broken module
// never aborts a run.
func (l *Loader) Load(name string) (value lua.LValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = errors.Newf("%s: panic during evaluation: %v", name, r)
		}
	}()

	L := lua.NewState()
	defer L.Close()
	l.env.Install(L)

	if doErr := L.DoFile(l.Path(name)); doErr != nil {
		return nil, errors.Wrapf(doErr, "%s: evaluation failed", name)
	}
	if L.GetTop() == 0 {
		return lua.LNil, nil
	}
	return L.Get(-1), nil
}
