package git

import (
	"reflect"
	"testing"
)

func TestParseWorktreeList(t *testing.T) {
	output := `worktree /home/user/project
HEAD abc123def456
branch refs/heads/main

worktree /home/user/project/.worktrees/feature-x
HEAD def456abc123
branch refs/heads/feature/new-model

worktree /home/user/project/.worktrees/fix-bug
HEAD 789abc123def
branch refs/heads/fix/bug-123

`
	got := ParseWorktreeList(output)

	want := []Worktree{
		{Path: "/home/user/project", Branch: "refs/heads/main", Commit: "abc123def456"},
		{Path: "/home/user/project/.worktrees/feature-x", Branch: "refs/heads/feature/new-model", Commit: "def456abc123"},
		{Path: "/home/user/project/.worktrees/fix-bug", Branch: "refs/heads/fix/bug-123", Commit: "789abc123def"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseWorktreeList() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestParseWorktreeList_BareBlockDropped(t *testing.T) {
	output := "worktree /r/a\nHEAD abc123\nbranch refs/heads/main\n\nworktree /r/b\nbare\nHEAD def456\n"

	got := ParseWorktreeList(output)

	want := []Worktree{{Path: "/r/a", Branch: "refs/heads/main", Commit: "abc123"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseWorktreeList() = %+v, want %+v", got, want)
	}
}

func TestParseWorktreeList_BareRepositoryWithLinkedWorktrees(t *testing.T) {
	output := `worktree /srv/repo.git
bare

worktree /srv/checkouts/main
HEAD 1111111111111111111111111111111111111111
branch refs/heads/main

worktree /srv/checkouts/topic
HEAD 2222222222222222222222222222222222222222
branch refs/heads/topic
`
	got := ParseWorktreeList(output)

	if len(got) != 2 {
		t.Fatalf("expected 2 worktrees, got %d: %+v", len(got), got)
	}
	if got[0].Path != "/srv/checkouts/main" || got[1].Path != "/srv/checkouts/topic" {
		t.Errorf("unexpected paths: %+v", got)
	}
}

func TestParseWorktreeList_BareVoidsBlockRegardlessOfPosition(t *testing.T) {
	// bare after branch/HEAD lines still voids the block
	output := "worktree /r/x\nHEAD abc\nbranch refs/heads/x\nbare\n\nworktree /r/y\nHEAD def\n"

	got := ParseWorktreeList(output)

	want := []Worktree{{Path: "/r/y", Commit: "def"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseWorktreeList() = %+v, want %+v", got, want)
	}
}

func TestParseWorktreeList_NoTrailingNewline(t *testing.T) {
	output := "worktree /r/a\nHEAD abc\nbranch refs/heads/a\n\nworktree /r/b\nHEAD def\nbranch refs/heads/b"

	got := ParseWorktreeList(output)

	if len(got) != 2 {
		t.Fatalf("expected 2 worktrees, got %d", len(got))
	}
	if got[1] != (Worktree{Path: "/r/b", Branch: "refs/heads/b", Commit: "def"}) {
		t.Errorf("last worktree = %+v", got[1])
	}
}

func TestParseWorktreeList_DetachedHead(t *testing.T) {
	output := "worktree /r/detached\nHEAD 0123456789abcdef\ndetached\n"

	got := ParseWorktreeList(output)

	want := []Worktree{{Path: "/r/detached", Commit: "0123456789abcdef"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseWorktreeList() = %+v, want %+v", got, want)
	}
}

func TestParseWorktreeList_AccumulatorsResetBetweenBlocks(t *testing.T) {
	// The second block has no branch; it must not inherit the first one's.
	output := "worktree /r/a\nHEAD aaa\nbranch refs/heads/a\n\nworktree /r/b\nHEAD bbb\ndetached\n\n"

	got := ParseWorktreeList(output)

	if len(got) != 2 {
		t.Fatalf("expected 2 worktrees, got %d", len(got))
	}
	if got[1].Branch != "" {
		t.Errorf("second worktree inherited branch %q", got[1].Branch)
	}
}

func TestParseWorktreeList_EdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []Worktree
	}{
		{
			name:   "empty",
			output: "",
			want:   nil,
		},
		{
			name:   "only blank lines",
			output: "\n\n\n",
			want:   nil,
		},
		{
			name:   "missing tokens do not panic",
			output: "worktree\nHEAD\nbranch\n",
			want:   nil,
		},
		{
			name:   "missing branch token",
			output: "worktree /r/a\nHEAD abc\nbranch\n",
			want:   []Worktree{{Path: "/r/a", Commit: "abc"}},
		},
		{
			name:   "block without path is skipped",
			output: "HEAD abc\nbranch refs/heads/a\n\nworktree /r/b\nHEAD def\n",
			want:   []Worktree{{Path: "/r/b", Commit: "def"}},
		},
		{
			name:   "unknown lines ignored",
			output: "worktree /r/a\nlocked reason here\nprunable gitdir file points to non-existent location\nHEAD abc\nnonsense\n",
			want:   []Worktree{{Path: "/r/a", Commit: "abc"}},
		},
		{
			name:   "crlf line endings",
			output: "worktree /r/a\r\nHEAD abc\r\nbranch refs/heads/a\r\n\r\n",
			want:   []Worktree{{Path: "/r/a", Branch: "refs/heads/a", Commit: "abc"}},
		},
		{
			name:   "path containing spaces",
			output: "worktree /r/my project\nHEAD abc\n",
			want:   []Worktree{{Path: "/r/my project", Commit: "abc"}},
		},
		{
			name:   "single line without terminator",
			output: "worktree /r/a",
			want:   []Worktree{{Path: "/r/a"}},
		},
		{
			name:   "bare as last line",
			output: "worktree /r/a\nbare",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseWorktreeList(tt.output)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseWorktreeList() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseWorktreeList_PreservesOrder(t *testing.T) {
	output := ""
	paths := []string{"/r/c", "/r/a", "/r/b", "/r/e", "/r/d"}
	for _, p := range paths {
		output += "worktree " + p + "\nHEAD 0000\nbranch refs/heads/x\n\n"
	}

	got := ParseWorktreeList(output)

	if len(got) != len(paths) {
		t.Fatalf("expected %d worktrees, got %d", len(paths), len(got))
	}
	for i, p := range paths {
		if got[i].Path != p {
			t.Errorf("worktree[%d].Path = %q, want %q", i, got[i].Path, p)
		}
	}
}

func TestWorktree_Name(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/user/proj-a", "proj-a"},
		{"/home/user/proj-a/", "proj-a"},
		{"relative/dir", "dir"},
	}

	for _, tt := range tests {
		if got := (Worktree{Path: tt.path}).Name(); got != tt.want {
			t.Errorf("Name() for %q = %q, want %q", tt.path, got, tt.want)
		}
	}
}
