package tmux

import (
	"reflect"
	"testing"
)

func TestParseSessions(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []Session
	}{
		{
			name:   "single session",
			output: "proj-a:1700000000\n",
			want:   []Session{{Name: "proj-a", LastAttached: 1700000000}},
		},
		{
			name:   "multiple sessions keep order",
			output: "proj-b:200\nproj-a:100\n",
			want: []Session{
				{Name: "proj-b", LastAttached: 200},
				{Name: "proj-a", LastAttached: 100},
			},
		},
		{
			name:   "never attached session has empty timestamp",
			output: "fresh:\nused:42\n",
			want:   []Session{{Name: "used", LastAttached: 42}},
		},
		{
			name:   "zero timestamp is kept",
			output: "idle:0\n",
			want:   []Session{{Name: "idle", LastAttached: 0}},
		},
		{
			name:   "malformed lines skipped",
			output: "no-colon-here\n:123\nok:7\nbad:abc\nneg:-5\n",
			want:   []Session{{Name: "ok", LastAttached: 7}},
		},
		{
			name:   "blank lines and whitespace",
			output: "\n  spaced:9  \n\n",
			want:   []Session{{Name: "spaced", LastAttached: 9}},
		},
		{
			name:   "no trailing newline",
			output: "a:1\nb:2",
			want:   []Session{{Name: "a", LastAttached: 1}, {Name: "b", LastAttached: 2}},
		},
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSessions(tt.output)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSessions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
