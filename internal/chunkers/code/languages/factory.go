package languages

import (
	"sync"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// AllStrategies returns a fresh instance of every supported language
// strategy.
func AllStrategies() []code.LanguageStrategy {
	return []code.LanguageStrategy{
		NewGoStrategy(),
		NewRustStrategy(),
		NewPythonStrategy(),
		NewJavaScriptStrategy(),
		NewTypeScriptStrategy(),
		NewTSXStrategy(),
		NewJavaStrategy(),
		NewCStrategy(),
		NewCPPStrategy(),
		NewCSharpStrategy(),
		NewRubyStrategy(),
		NewPHPStrategy(),
		NewKotlinStrategy(),
		NewSwiftStrategy(),
		NewScalaStrategy(),
		NewElixirStrategy(),
		NewLuaStrategy(),
		NewBashStrategy(),
		NewOCamlStrategy(),
		NewElmStrategy(),
		NewGroovyStrategy(),
	}
}

// NewDefaultRegistry compiles a registry with every supported language.
// This is the recommended way to create a production registry.
func NewDefaultRegistry() (*code.Registry, error) {
	return code.NewRegistry(AllStrategies()...)
}

// DefaultRegistry returns a process-wide registry, compiled on first use.
var DefaultRegistry = sync.OnceValues(NewDefaultRegistry)
