package classgen

import (
	"fmt"
	"strings"

	"javaxify/internal/script"
)

// Shape is the deserialization strategy chosen for a declared type.
type Shape int

const (
	ShapeObject Shape = iota
	ShapeList
	ShapeMap
)

func (s Shape) String() string {
	switch s {
	case ShapeList:
		return "list"
	case ShapeMap:
		return "map"
	default:
		return "object"
	}
}

// ShapeOf classifies a declared type by its literal prefix. This is a plain
// string test: "java.util.List<X>" or "ArrayList<X>" are objects, not lists.
func ShapeOf(declaredType string) Shape {
	switch {
	case strings.HasPrefix(declaredType, "List<"):
		return ShapeList
	case strings.HasPrefix(declaredType, "Map<"):
		return ShapeMap
	default:
		return ShapeObject
	}
}

// InputPath is the Java expression naming the argument's JSON file.
func InputPath(argument string) string {
	return fmt.Sprintf("Paths.get(%q, %q)", InputsDir, argument+".json")
}

// Resolve returns the initializer expression that loads v from its input file.
func Resolve(v script.Variable) string {
	path := InputPath(v.Argument)
	switch ShapeOf(v.Type) {
	case ShapeList:
		return fmt.Sprintf("parseList(%s, new TypeReference<%s>(){})", path, v.Type)
	case ShapeMap:
		return fmt.Sprintf("parseMap(%s, new TypeReference<%s>(){})", path, v.Type)
	default:
		return fmt.Sprintf("parseObject(%s, %s.class)", path, v.Type)
	}
}
