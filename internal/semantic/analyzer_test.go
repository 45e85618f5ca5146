package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roverscript/roverscript/internal/lexer"
	"github.com/roverscript/roverscript/internal/parser"
)

func check(t *testing.T, src string) []error {
	t.Helper()
	toks, err := lexer.Lex(src)
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	return New(src).Check(prog)
}

func TestCheckWellFormedProgram(t *testing.T) {
	errs := check(t, `{ int x ; double y ; x = 3 ; y = x + 1.5 ; }`)
	assert.Empty(t, errs)
}

func TestCheckRedefinitionInSameScope(t *testing.T) {
	errs := check(t, `{ int x ; int x ; }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `redefined`)
}

func TestCheckShadowingAcrossNestedBlocksIsAllowed(t *testing.T) {
	errs := check(t, `{ int x ; { int x ; x = 5 ; } x = 1 ; }`)
	assert.Empty(t, errs)
}

func TestCheckUndefinedReference(t *testing.T) {
	errs := check(t, `{ x = 3 ; }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "undefined")
}

func TestCheckCollectsMultipleErrors(t *testing.T) {
	errs := check(t, `{ x = 3 ; y = 4 ; }`)
	assert.Len(t, errs, 2)
}

func TestCheckConditionMustBeBool(t *testing.T) {
	errs := check(t, `{ int x ; if ( x ) print 1 ; }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "bool")
}

func TestCheckStringConcatenation(t *testing.T) {
	errs := check(t, `{ string a ; a = "x" + "y" ; }`)
	assert.Empty(t, errs)
}

func TestCheckArithmeticRejectsStringNumberMix(t *testing.T) {
	errs := check(t, `{ string a ; int x ; a = "x" ; x = 1 ; a = a + x ; }`)
	require.Len(t, errs, 1)
}

func TestCheckArraySubscriptArity(t *testing.T) {
	errs := check(t, `{ int arr [ 3 ] [ 3 ] ; arr [ 0 ] [ 0 ] [ 0 ] = 1 ; }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "subscript")
}

func TestCheckArraySubscriptMustBeInt(t *testing.T) {
	errs := check(t, `{ int arr [ 3 ] ; bool b ; b = true ; arr [ b ] = 1 ; }`)
	require.Len(t, errs, 1)
}

func TestCheckAssignMismatchedArrayShape(t *testing.T) {
	errs := check(t, `{ int a [ 3 ] ; int b [ 3 ] [ 2 ] ; a = b ; }`)
	require.Len(t, errs, 1)
}

func TestCheckAssignRejectsWholeArrayEvenWithMatchingShape(t *testing.T) {
	errs := check(t, `{ int a [ 2 ] ; int b [ 2 ] ; b = a ; }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "cannot assign to an array")
}

func TestCheckPrintRejectsArray(t *testing.T) {
	errs := check(t, `{ int a [ 2 ] ; print a ; }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "print requires a scalar value")
}

func TestCheckPrintAcceptsIndexedArrayElement(t *testing.T) {
	errs := check(t, `{ int a [ 2 ] ; a [ 0 ] = 1 ; print a [ 0 ] ; }`)
	assert.Empty(t, errs)
}

func TestCheckMoveRequiresIntSteps(t *testing.T) {
	errs := check(t, `{ string s ; s = "x" ; rover . move up s ; }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "int step count")
}

func TestCheckChangeMapRequiresStringPath(t *testing.T) {
	errs := check(t, `{ int n ; n = 1 ; rover . change_map n ; }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "string path")
}

func TestCheckGetterTypes(t *testing.T) {
	errs := check(t, `{ int x ; bool b ; x = rover . x_pos ; b = rover . can_move up ; }`)
	assert.Empty(t, errs)
}

func TestCheckShortCircuitOperandsMustBeBool(t *testing.T) {
	errs := check(t, `{ int x ; bool b ; x = 1 ; b = x && true ; }`)
	require.Len(t, errs, 1)
}
