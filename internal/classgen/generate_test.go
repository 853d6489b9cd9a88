package classgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"javaxify/internal/script"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoScript = `String username = **user_info;
List<Integer> scores = **score_list;
System.out.println(username);`

func unitFor(pkg, class, text string) Unit {
	vars := script.Extract(text)
	body, _ := script.Partition(text, vars)
	return Unit{Package: pkg, ClassName: class, Vars: vars, Body: body}
}

func TestGenerate_DemoGolden(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "demo.java.golden"))
	require.NoError(t, err)

	got := Generate(unitFor("", "Demo", demoScript))
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("Generate mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Package(t *testing.T) {
	got := Generate(unitFor("com.example.jobs", "Demo", demoScript))
	assert.True(t, strings.HasPrefix(got, "package com.example.jobs;\n\nimport com.alibaba.fastjson.*;\n"))

	got = Generate(unitFor("", "Demo", demoScript))
	assert.True(t, strings.HasPrefix(got, "import com.alibaba.fastjson.*;\n"))
}

func TestGenerate_DefaultClassName(t *testing.T) {
	got := Generate(unitFor("", "", demoScript))
	assert.Contains(t, got, "public class GeneratedClass {\n")
	assert.Contains(t, got, "GeneratedClass.class.getResourceAsStream")
}

func TestGenerate_NoBindings(t *testing.T) {
	got := Generate(unitFor("", "Hello", `System.out.println("hi");`))

	assert.Contains(t, got, "        run();\n")
	assert.Contains(t, got, "    public static void run(\n    ) {\n        System.out.println(\"hi\");\n    }\n")
	assert.NotContains(t, got, "// Line")
}

func TestGenerate_EmptyBodyOmitsRun(t *testing.T) {
	got := Generate(Unit{
		ClassName: "OnlyArgs",
		Vars:      script.Extract("int a = **a;"),
		Body:      nil,
	})

	assert.Contains(t, got, "        run(a);\n")
	assert.NotContains(t, got, "public static void run(")
	assert.Contains(t, got, "private static <T> T parseObject(", "helpers are always emitted")
}

func TestGenerate_BodyIndentation(t *testing.T) {
	text := "int n = **n;\nif (n > 0) {\n    System.out.println(n);\n}\n"
	got := Generate(unitFor("", "Indent", text))

	assert.Contains(t, got, "    ) {\n        if (n > 0) {\n            System.out.println(n);\n        }\n\n    }\n")
}

func TestGenerate_ParameterComments(t *testing.T) {
	text := "  int a = **a;\nString b = (String) **b; \nuse(a, b);"
	got := Generate(unitFor("", "Params", text))

	assert.Contains(t, got, "        int a, //   int a = **a;\n")
	assert.Contains(t, got, "        String b // String b = (String) **b; \n")
}

func TestGenerate_DebugBlock(t *testing.T) {
	got := Generate(unitFor("", "Dbg", "Map<String, Double> prices = **price_map;\nuse(prices);"))

	assert.Contains(t, got, `System.out.println("prices (Map<String, Double>): " + prices);`)
	assert.Contains(t, got, "        System.out.println();\n\n        // business logic\n")
}
