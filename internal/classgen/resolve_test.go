package classgen

import (
	"testing"

	"javaxify/internal/script"

	"github.com/stretchr/testify/assert"
)

func TestShapeOf(t *testing.T) {
	tests := []struct {
		typ  string
		want Shape
	}{
		{"List<Integer>", ShapeList},
		{"List<List<String>>", ShapeList},
		{"Map<String,Double>", ShapeMap},
		{"Map<String, List<Integer>>", ShapeMap},
		{"boolean", ShapeObject},
		{"String", ShapeObject},
		{"ArrayList<Integer>", ShapeObject},
		{"java.util.List<Integer>", ShapeObject},
		{"List", ShapeObject},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			assert.Equal(t, tt.want, ShapeOf(tt.typ))
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		v    script.Variable
		want string
	}{
		{
			name: "list",
			v:    script.Variable{Type: "List<Integer>", Argument: "score_list"},
			want: `parseList(Paths.get("inputs", "score_list.json"), new TypeReference<List<Integer>>(){})`,
		},
		{
			name: "map",
			v:    script.Variable{Type: "Map<String,Double>", Argument: "prices"},
			want: `parseMap(Paths.get("inputs", "prices.json"), new TypeReference<Map<String,Double>>(){})`,
		},
		{
			name: "plain",
			v:    script.Variable{Type: "boolean", Argument: "admin_flag"},
			want: `parseObject(Paths.get("inputs", "admin_flag.json"), boolean.class)`,
		},
		{
			name: "malformed type passes through",
			v:    script.Variable{Type: "Map<String", Argument: "m"},
			want: `parseMap(Paths.get("inputs", "m.json"), new TypeReference<Map<String>(){})`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.v))
		})
	}
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "list", ShapeList.String())
	assert.Equal(t, "map", ShapeMap.String())
	assert.Equal(t, "object", ShapeObject.String())
}
