package rules

import (
	"github.com/donaldgifford/makelint/internal/rules/practice"
	"github.com/donaldgifford/makelint/internal/rules/security"
	"github.com/donaldgifford/makelint/internal/rules/style"
	"github.com/donaldgifford/makelint/internal/rules/syntax"
)

func init() {
	Register(&syntax.TabInRecipe{})
	Register(&syntax.InvalidVariableName{})

	Register(&style.LineLength{})
	Register(&style.VariableNaming{})
	Register(&style.TargetNaming{})
	Register(&style.VariableShadowing{})

	Register(&practice.MissingPhony{})
	Register(&practice.HardcodedPath{})

	Register(&security.DangerousRM{})
}
