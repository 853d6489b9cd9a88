package javasrc

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *Unit {
	t.Helper()
	unit, err := NewTreeSitterParser().Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	return unit
}

func TestTreeSitterParser_Methods(t *testing.T) {
	src := `package demo;

public class Demo {
    private void helper() {}

    public static void run(int count, String message) {
        System.out.println(count);
    }

    static class Inner {
        public void run() {}
    }

    abstract static class Base {
        public abstract void run(int x);
    }
}
`
	unit := parse(t, src)
	require.Len(t, unit.Methods, 4)

	names := make([]string, len(unit.Methods))
	for i, m := range unit.Methods {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"helper", "run", "run", "run"}, names)

	run := unit.Methods[1]
	assert.Equal(t, []string{"public", "static"}, run.Modifiers)
	assert.True(t, run.HasModifier("static"))
	assert.Equal(t, 6, run.Line)
	assert.False(t, run.InInterface)
	require.NotNil(t, run.Body)
	assert.Equal(t, "\n        System.out.println(count);\n    ", *run.Body)

	if diff := cmp.Diff([]Param{{Type: "int", Name: "count"}, {Type: "String", Name: "message"}}, run.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, unit.Methods[3].Body, "abstract method has no body")
}

func TestTreeSitterParser_InterfaceMethods(t *testing.T) {
	unit := parse(t, `interface Job {
    static void run(String s) { go(s); }
    void other();
}`)
	require.Len(t, unit.Methods, 2)
	assert.True(t, unit.Methods[0].InInterface)
	assert.True(t, unit.Methods[0].HasModifier("static"))
	assert.False(t, unit.Methods[0].HasModifier("public"))
}

func TestTreeSitterParser_ParamComments(t *testing.T) {
	src := `public class Demo {
    public static void run(
        int count, // 3 + 4
        /* "hello" */ String message,
        List<Integer> scores //
    ) {
    }
}`
	unit := parse(t, src)
	require.Len(t, unit.Methods, 1)

	want := []Param{
		{Type: "int", Name: "count", Comment: "// 3 + 4"},
		{Type: "String", Name: "message", Comment: `/* "hello" */`},
		{Type: "List<Integer>", Name: "scores", Comment: "//"},
	}
	if diff := cmp.Diff(want, unit.Methods[0].Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeSitterParser_CommentOnOwnLineAttachesForward(t *testing.T) {
	src := `class A {
    public static void run(
        int a,
        // first
        // second
        int b
    ) {}
}`
	unit := parse(t, src)
	require.Len(t, unit.Methods, 1)
	params := unit.Methods[0].Params
	require.Len(t, params, 2)
	assert.Empty(t, params[0].Comment)
	assert.Equal(t, "// second", params[1].Comment)
}

func TestTreeSitterParser_ParamShapes(t *testing.T) {
	src := `class A {
    public static void run(final Map<String, List<Integer>> m, int grid[], String... rest) {}
}`
	unit := parse(t, src)
	require.Len(t, unit.Methods, 1)

	want := []Param{
		{Type: "Map<String, List<Integer>>", Name: "m"},
		{Type: "int[]", Name: "grid"},
		{Type: "String[]", Name: "rest"},
	}
	if diff := cmp.Diff(want, unit.Methods[0].Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeSitterParser_SyntaxError(t *testing.T) {
	_, err := NewTreeSitterParser().Parse(context.Background(), []byte("public class {{{ run( ;"))
	require.Error(t, err)

	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.GreaterOrEqual(t, serr.Line, 1)
	assert.NotEmpty(t, serr.Message)
}

func TestTreeSitterParser_Concurrent(t *testing.T) {
	p := NewTreeSitterParser()
	src := []byte("class A { public static void run(int a) { f(a); } }")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unit, err := p.Parse(context.Background(), src)
			if err == nil && len(unit.Methods) != 1 {
				err = errors.New("expected one method")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestSyntaxError_Error(t *testing.T) {
	err := &SyntaxError{Line: 3, Column: 7, Message: "missing ;"}
	assert.Equal(t, "3:7: missing ;", err.Error())
}

func TestTreeSitterParser_Language(t *testing.T) {
	assert.Equal(t, "java", NewTreeSitterParser().Language())
}
