package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	text := strings.Join([]string{
		"// user config",
		"String username = **user_info;",
		"List<Integer> scores = **score_list;",
		"",
		"    System.out.println(username);  ",
	}, "\n")

	vars := Extract(text)
	body, consumed := Partition(text, vars)

	assert.Equal(t, []string{"// user config", "", "    System.out.println(username);  "}, body)
	assert.Equal(t, map[int]struct{}{2: {}, 3: {}}, consumed)
}

func TestPartition_EveryLineInExactlyOneBucket(t *testing.T) {
	text := strings.Join([]string{
		"int a = **a;",
		"/*",
		"int hidden = **hidden;",
		"*/",
		"int b = **b;",
		"foo(a, b);",
		"int c = **c;",
	}, "\n")

	vars := Extract(text)
	body, consumed := Partition(text, vars)

	total := len(Lines(text))
	require.Equal(t, total, len(body)+len(consumed))

	for _, v := range vars {
		assert.NotContains(t, body, v.Statement)
	}
	assert.Contains(t, body, "int hidden = **hidden;", "commented binding stays in the body")
}

func TestPartition_NoBindings(t *testing.T) {
	text := "a();\nb();"
	body, consumed := Partition(text, nil)
	assert.Equal(t, []string{"a();", "b();"}, body)
	assert.Empty(t, consumed)
}
