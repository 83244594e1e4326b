package cli

import (
	"bytes"
	"strings"
	"testing"
)

var completionProviders = []string{"google-ai", "deepseek", "sympy", "wolfram-alpha", "stack-exchange"}

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _mathsolve_completions mathsolve", `providers="google-ai deepseek sympy wolfram-alpha stack-exchange"`, "--output|-o)", `compgen -W "gemini majority first"`}},
		{"zsh", []string{"#compdef mathsolve", "'--providers[Providers to query]:provider:($providers)'", "'(-o --output)'{-o,--output}'[Report file path]:file:_files'"}},
		{"fish", []string{"complete -c mathsolve -f", "# Server", "complete -c mathsolve -l redis -d 'Redis address for the graph cache' -xa 'localhost:6379'", "-xa 'google-ai deepseek"}},
		{"powershell", []string{"-CommandName 'mathsolve'", "@{Name = '--json'; Description = 'Print the result as JSON' }", "@('google-ai', 'deepseek'"}},
		{"ps", []string{"Register-ArgumentCompleter"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, completionProviders); err != nil {
				t.Fatalf("GenerateCompletion(%s): %v", tt.shell, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script should contain %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()
	if err := GenerateCompletion(&bytes.Buffer{}, "tcsh", nil); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestFlagRegistry_CoversEveryFlag(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, f := range flagRegistry {
		if f.Long == "" {
			t.Errorf("flag -%s has no long form", f.Short)
		}
		if seen[f.Long] {
			t.Errorf("duplicate flag %q", f.Long)
		}
		seen[f.Long] = true
		found := false
		for _, s := range fishSections {
			found = found || s == f.Section
		}
		if !found {
			t.Errorf("flag %q has unknown section %q", f.Long, f.Section)
		}
	}
}
