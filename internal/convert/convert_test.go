package convert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"javaxify/internal/locate"
	"javaxify/internal/script"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoScript = `String username = **user_info;
List<Integer> scores = **score_list;
System.out.println(username);`

func TestScriptToClass_DemoScenario(t *testing.T) {
	res := NewDefault().ScriptToClass(demoScript, "", "Demo")

	assert.Len(t, res.Vars, 2)
	assert.NotContains(t, res.Text, "package ")
	assert.Contains(t, res.Text, `String username = parseObject(Paths.get("inputs", "user_info.json"), String.class);`)
	assert.Contains(t, res.Text, `List<Integer> scores = parseList(Paths.get("inputs", "score_list.json"), new TypeReference<List<Integer>>(){});`)
	assert.Contains(t, res.Text, `System.out.println("username (String): " + username);`)
	assert.Contains(t, res.Text, `System.out.println("scores (List<Integer>): " + scores);`)
	assert.Contains(t, res.Text, "        run(username, scores);\n")
	assert.Contains(t, res.Text, "    ) {\n        System.out.println(username);\n    }\n")
}

func TestScriptToClass_MalformedNeverFails(t *testing.T) {
	res := NewDefault().ScriptToClass("String x = **;\nfoo(", "p", "Broken")
	assert.Empty(t, res.Vars)
	assert.Contains(t, res.Text, "        String x = **;\n        foo(\n")
}

func TestClassToScript(t *testing.T) {
	src := `public class Demo {
    /**
     * sample run method
     */
    public static void run(
       int count, // 3
        String message //
    ) {
        // loop
        for (int i = 0; i < count; i++) {
            System.out.println(message);
        }
    }
}`
	got, err := NewDefault().ClassToScript(context.Background(), src)
	require.NoError(t, err)

	want := "int count = 3;\n" +
		"String message = (String) **message;\n" +
		"\n" +
		"// loop\n" +
		"for (int i = 0; i < count; i++) {\n" +
		"    System.out.println(message);\n" +
		"}\n"
	assert.Equal(t, want, got)
}

func TestClassToScript_NotFound(t *testing.T) {
	tests := map[string]string{
		"private static": "class A { private static void run(int a) {} }",
		"instance":       "class A { public void run(int a) {} }",
		"no run":         "class A { public static void main(String[] args) {} }",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := NewDefault().ClassToScript(context.Background(), src)
			assert.Empty(t, got)
			assert.ErrorIs(t, err, locate.ErrNotFound)
			assert.Equal(t, KindNotFound, KindOf(err))
		})
	}
}

func TestClassToScript_ParseFailure(t *testing.T) {
	got, err := NewDefault().ClassToScript(context.Background(), "public class Demo { public static void run( {")
	assert.Empty(t, got)
	require.ErrorIs(t, err, locate.ErrParseFailure)
	assert.Equal(t, KindParseFailure, KindOf(err))
}

func TestRoundTrip_Parameters(t *testing.T) {
	src := strings.Join([]string{
		"String username = (String) **username;",
		"List<Integer> scores = (List<Integer>) **scores;",
		"Map<String, Double> prices = (Map<String, Double>) **prices;",
		"boolean isAdmin = (boolean) **isAdmin;",
		"",
		"if (isAdmin) {",
		"    System.out.println(username + scores + prices);",
		"}",
	}, "\n")

	c := NewDefault()
	class := c.ScriptToClass(src, "com.example", "Trip")

	proc, err := c.Inspect(context.Background(), class.Text)
	require.NoError(t, err)
	require.Len(t, proc.Parameters, len(class.Vars))
	for i, v := range class.Vars {
		assert.Equal(t, v.Type, proc.Parameters[i].Type, "param %d type", i)
		assert.Equal(t, v.Name, proc.Parameters[i].Name, "param %d name", i)
	}

	back, err := c.ClassToScript(context.Background(), class.Text)
	require.NoError(t, err)

	again := script.Extract(back)
	require.Len(t, again, len(class.Vars))
	for i, v := range class.Vars {
		assert.Equal(t, v.Type, again[i].Type)
		assert.Equal(t, v.Name, again[i].Name)
	}
	assert.Contains(t, back, "if (isAdmin) {\n    System.out.println(username + scores + prices);\n}")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", locate.ErrNotFound)))
	assert.Equal(t, KindParseFailure, KindOf(&locate.ParseError{Message: "x"}))
	assert.Equal(t, KindInternal, KindOf(errors.New("disk full")))
}
