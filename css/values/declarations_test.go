package values

import (
	"testing"

	"github.com/benoitkugler/cssom/css/errs"
	tu "github.com/benoitkugler/cssom/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestParseDeclarations(t *testing.T) {
	var handler CollectHandler
	decls := ParseDeclarations("WIDTH: 10px; color: red !important; --Foo: {a}; height: ; 12: 3px; margin: 1px 2px", &handler)

	require.Len(t, decls, 4)
	tu.AssertEqual(t, decls[0].Property, "width")
	tu.AssertEqual(t, CssText(decls[0].Value), "10px")
	tu.AssertEqual(t, decls[1].Property, "color")
	tu.AssertEqual(t, decls[1].Important, true)
	tu.AssertEqual(t, CssText(decls[1].Value), "red")
	tu.AssertEqual(t, decls[2].Property, "--Foo")
	require.NotNil(t, decls[2].Value)
	tu.AssertEqual(t, decls[3].Property, "margin")
	tu.AssertEqual(t, decls[3].Important, false)

	errors := handler.Errors()
	require.Len(t, errors, 2)
	require.Contains(t, errors[0].Error(), "height")
	tu.AssertEqual(t, errs.KindOf(errors[0]), errs.Syntax)
	tu.AssertEqual(t, errs.KindOf(errors[1]), errs.Syntax)
	require.Error(t, handler.Err())
}

func TestDeclarationsLogging(t *testing.T) {
	capture := tu.CaptureLogs()
	defer capture.Close()

	decls := ParseDeclarations("width: calc(1px + ); height: 2px", LogHandler{Logger: capture.Logger()})
	require.Len(t, decls, 1)
	capture.CheckLogs(t, "ignored declaration property=width")

	// the default handler uses the package warning logger
	capture2 := tu.CaptureLogs()
	defer capture2.Close()
	ParseDeclarations("width: ", nil)
	capture2.CheckLogs(t, "ignored declaration property=width")

	ParseDeclarations("width: 1px", nil)
	require.Len(t, capture2.Logs(), 1)
}
