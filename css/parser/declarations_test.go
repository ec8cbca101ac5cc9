package parser

import (
	"testing"

	"github.com/benoitkugler/cssom/css/errs"
	tu "github.com/benoitkugler/cssom/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestParseDeclarationList(t *testing.T) {
	l := ParseDeclarationList("color: red; @media print { a: b } width : calc(1px + 2em) ! IMPORTANT ;; 12px: a; height 2px")
	require.Len(t, l, 5)

	tu.AssertEqual(t, l[0].Name, "color")
	tu.AssertEqual(t, Serialize(l[0].Value), " red")
	require.NoError(t, l[0].Err)

	tu.AssertEqual(t, errs.KindOf(l[1].Err), errs.Syntax)
	require.Contains(t, l[1].Err.Error(), "@media")

	tu.AssertEqual(t, l[2].Name, "width")
	tu.AssertEqual(t, l[2].Important, true)
	tu.AssertEqual(t, Serialize(l[2].Value), " calc(1px + 2em) ")

	tu.AssertEqual(t, errs.KindOf(l[3].Err), errs.Syntax)
	tu.AssertEqual(t, l[4].Name, "height")
	tu.AssertEqual(t, errs.KindOf(l[4].Err), errs.Syntax)

	require.Len(t, ParseDeclarationList(" ; /* */ ;"), 0)
}

func TestImportant(t *testing.T) {
	for _, test := range []struct {
		input     string
		value     string
		important bool
	}{
		{"a: b !important", " b ", true},
		{"a: !important", " ", true},
		{"a: b ! important x", " b ! important x", false},
		{"a: important", " important", false},
		{"a: b !ImPortant", " b ", true},
	} {
		l := ParseDeclarationList(test.input)
		require.Len(t, l, 1)
		tu.AssertEqual(t, l[0].Important, test.important)
		tu.AssertEqual(t, Serialize(l[0].Value), test.value)
	}
}
