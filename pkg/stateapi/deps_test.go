package stateapi_test

import (
	"testing"

	"taxcore/testutil"
)

// State plugins are written against this package and pkg/domain alone. If
// stateapi grew an internal dependency, plugins would inherit it.
func TestStateAPIImportsNothingInternal(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden,
		"pkg/stateapi must not import internal packages")
}

func TestStateAPITransitiveDeps(t *testing.T) {
	testutil.AssertNoTransitiveDependency(t, ".", testutil.InternalImportForbidden,
		"pkg/stateapi must not depend on internal packages, even transitively")
}
