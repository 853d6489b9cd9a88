// Package classgen emits the class form of a script: a self-contained Java
// class whose main method loads every placeholder argument from
// inputs/<key>.json, prints it, and calls a static run method holding the
// original business logic.
package classgen

import (
	"fmt"
	"strings"

	"javaxify/internal/logging"
	"javaxify/internal/script"
)

// InputsDir is the directory, relative to the generated class, that holds
// one <argument>.json file per placeholder.
const InputsDir = "inputs"

// DefaultClassName is used when no class name is supplied.
const DefaultClassName = "GeneratedClass"

const (
	indent     = "    "
	bodyIndent = indent + indent

	debugHeader = "=== Run Arguments ===>"
	debugFooter = "<=== Run Arguments ==="
)

var imports = []string{
	"import com.alibaba.fastjson.*;",
	"import java.nio.file.*;",
	"import java.io.*;",
	"import java.util.*;",
}

// Unit is everything the generator needs for one class.
type Unit struct {
	Package   string
	ClassName string
	Vars      []script.Variable
	Body      []string
}

// Generate renders u as Java source.
func Generate(u Unit) string {
	className := u.ClassName
	if className == "" {
		className = DefaultClassName
	}

	var b strings.Builder
	writePackage(&b, u.Package)
	writeImports(&b)
	fmt.Fprintf(&b, "public class %s {\n", className)
	writeMain(&b, u.Vars)
	writeRun(&b, u.Vars, u.Body)
	writeHelpers(&b, className)
	b.WriteString("}\n")

	logging.GenerateDebug("classgen: %s rendered with %d parameter(s), %d body line(s)",
		className, len(u.Vars), len(u.Body))
	return b.String()
}

func writePackage(b *strings.Builder, pkg string) {
	if pkg == "" {
		return
	}
	fmt.Fprintf(b, "package %s;\n\n", pkg)
}

func writeImports(b *strings.Builder) {
	for _, imp := range imports {
		b.WriteString(imp)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}

func writeMain(b *strings.Builder, vars []script.Variable) {
	b.WriteString(indent + "public static void main(String[] args) throws IOException {\n")

	for _, v := range vars {
		fmt.Fprintf(b, "%s// Line %d\n", bodyIndent, v.Line)
		fmt.Fprintf(b, "%s%s %s = %s;\n", bodyIndent, v.Type, v.Name, Resolve(v))
	}

	fmt.Fprintf(b, "%sSystem.out.println(%q);\n", bodyIndent, debugHeader)
	for _, v := range vars {
		fmt.Fprintf(b, "%sSystem.out.println(\"%s (%s): \" + %s);\n", bodyIndent, v.Name, v.Type, v.Name)
	}
	fmt.Fprintf(b, "%sSystem.out.println(%q);\n", bodyIndent, debugFooter)
	b.WriteString(bodyIndent + "System.out.println();\n\n")

	b.WriteString(bodyIndent + "// business logic\n")
	fmt.Fprintf(b, "%srun(%s);\n", bodyIndent, strings.Join(names(vars), ", "))
	b.WriteString(indent + "}\n\n")
}

func names(vars []script.Variable) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = v.Name
	}
	return out
}

// writeRun emits the run method. Each parameter carries its original binding
// line as a trailing comment. Nothing is emitted for an empty body.
func writeRun(b *strings.Builder, vars []script.Variable, body []string) {
	if len(body) == 0 {
		return
	}

	b.WriteString(indent + "public static void run(\n")
	for i, v := range vars {
		sep := ","
		if i == len(vars)-1 {
			sep = ""
		}
		fmt.Fprintf(b, "%s%s %s%s // %s\n", bodyIndent, v.Type, v.Name, sep, v.Statement)
	}
	b.WriteString(indent + ") {\n")

	for _, line := range body {
		if line == "" {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(bodyIndent)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(indent + "}\n\n")
}

// writeHelpers emits the loader and deserializers. They are always present,
// whether or not a declaration uses them.
func writeHelpers(b *strings.Builder, className string) {
	helpers := []string{
		"// generic file reader",
		"private static String readFile(Path path) throws IOException {",
		indent + "try (InputStream in = " + className + ".class.getResourceAsStream(path.toString())) {",
		indent + indent + "if (in == null) {",
		indent + indent + indent + `throw new RuntimeException(String.format("file %s does not exist", path));`,
		indent + indent + "}",
		indent + indent + "return new String(in.readAllBytes());",
		indent + "}",
		"}",
		"",
		"// collection parsing",
		"private static <T> java.util.List<T> parseList(",
		indent + "Path path, TypeReference<java.util.List<T>> typeRef",
		") throws IOException {",
		indent + "return JSON.parseObject(readFile(path), typeRef);",
		"}",
		"",
		"private static <K, V> java.util.Map<K, V> parseMap(",
		indent + "Path path, TypeReference<java.util.Map<K, V>> typeRef",
		") throws IOException {",
		indent + "return JSON.parseObject(readFile(path), typeRef);",
		"}",
		"",
		"// plain object parsing",
		"private static <T> T parseObject(Path path, Class<T> clazz) throws IOException {",
		indent + "return JSON.parseObject(readFile(path), clazz);",
		"}",
	}
	for _, line := range helpers {
		if line != "" {
			b.WriteString(indent)
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
}
