package planner_test

import (
	"reflect"
	"testing"

	"smart-task-planner/internal/planner"
)

func TestParseTasks(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: []string{}},
		{name: "whitespace only", raw: "   ", want: []string{}},
		{name: "delimiters only", raw: ",;\n ;", want: []string{}},
		{name: "single", raw: "Finish report", want: []string{"Finish report"}},
		{name: "mixed", raw: "  Finish report\nBuy milk; call mom ,, ", want: []string{"Finish report", "Buy milk", "call mom"}},
		{name: "windows newlines", raw: "a\r\nb", want: []string{"a", "b"}},
		{name: "keeps duplicates", raw: "call mom, Call Mom", want: []string{"call mom", "Call Mom"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := planner.ParseTasks(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTasks(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseTasksDelimiterEquivalence(t *testing.T) {
	segments := []string{"write essay", "buy milk", "call mom"}
	separators := []string{",", ";", "\n", " , ", "; ", "\n\n"}

	want := planner.ParseTasks(segments[0] + "," + segments[1] + "," + segments[2])
	for _, first := range separators {
		for _, second := range separators {
			raw := segments[0] + first + segments[1] + second + segments[2]
			if got := planner.ParseTasks(raw); !reflect.DeepEqual(got, want) {
				t.Errorf("ParseTasks(%q) = %q, want %q", raw, got, want)
			}
		}
	}
}
