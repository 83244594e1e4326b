package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

// FlagCompletion describes one command-line flag to the completion
// generators. Every script is produced from flagRegistry.
type FlagCompletion struct {
	Long       string   // without "--"
	Short      string   // without "-"
	Help       string
	Values     []string // fixed suggestions; nil for switches or free text
	ValueName  string   // zsh value label; empty for switches
	IsFile     bool
	IsProvider bool   // suggestions are the provider names
	Section    string // fish comment heading
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Short: "V", Help: "Show version information", Section: "Help and version"},
	{Long: "query", Short: "q", Help: "Math query to solve", ValueName: "query", Section: "Query"},
	{Long: "providers", Help: "Providers to query", IsProvider: true, ValueName: "provider", Section: "Query"},
	{Long: "arbiter", Help: "Best-answer strategy", Values: []string{"gemini", "majority", "first"}, ValueName: "strategy", Section: "Query"},
	{Long: "provider-timeout", Help: "Deadline for each provider", Values: []string{"5s", "10s", "30s"}, ValueName: "duration", Section: "Query"},
	{Long: "timeout", Help: "Deadline for a whole query", Values: []string{"30s", "1m", "5m"}, ValueName: "duration", Section: "Query"},
	{Long: "graph", Help: "Render a graph of the expression after =", Section: "Query"},
	{Long: "verbose", Short: "v", Help: "Show every provider answer", Section: "Output"},
	{Long: "quiet", Help: "Print only the best answer", Section: "Output"},
	{Long: "json", Help: "Print the result as JSON", Section: "Output"},
	{Long: "output", Short: "o", Help: "Report file path", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "repl", Help: "Start an interactive session", Section: "Modes"},
	{Long: "tui", Help: "Start the interactive dashboard", Section: "Modes"},
	{Long: "serve", Help: "Start the HTTP server", Section: "Modes"},
	{Long: "addr", Help: "HTTP listen address", Values: []string{":8080", "127.0.0.1:8080"}, ValueName: "address", Section: "Server"},
	{Long: "rate-limit", Help: "Requests per second per client", ValueName: "rate", Section: "Server"},
	{Long: "rate-burst", Help: "Request burst per client", ValueName: "burst", Section: "Server"},
	{Long: "allowed-origins", Help: "CORS origins", ValueName: "origins", Section: "Server"},
	{Long: "redis", Help: "Redis address for the graph cache", Values: []string{"localhost:6379"}, ValueName: "address", Section: "Server"},
	{Long: "graph-cache-ttl", Help: "Lifetime of cached graphs", Values: []string{"1m", "10m", "1h"}, ValueName: "duration", Section: "Server"},
	{Long: "config", Help: "YAML configuration file", IsFile: true, ValueName: "file", Section: "Configuration"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell", Section: "Configuration"},
}

// fishSections fixes the order of the fish headings.
var fishSections = []string{"Help and version", "Query", "Output", "Modes", "Server", "Configuration"}

// Forms returns the dashed spellings of the flag, long first.
func (f FlagCompletion) Forms() []string {
	forms := []string{"--" + f.Long}
	if f.Short != "" {
		forms = append(forms, "-"+f.Short)
	}
	return forms
}

// completionFlag is a FlagCompletion with its suggestions resolved.
type completionFlag struct {
	FlagCompletion
	Words []string
}

type completionData struct {
	Providers []string
	Flags     []completionFlag
	Sections  []completionSection
}

type completionSection struct {
	Title string
	Flags []completionFlag
}

func newCompletionData(providers []string) completionData {
	data := completionData{Providers: providers}
	for _, f := range flagRegistry {
		cf := completionFlag{FlagCompletion: f, Words: f.Values}
		if f.IsProvider {
			cf.Words = providers
		}
		data.Flags = append(data.Flags, cf)
	}
	for _, title := range fishSections {
		sec := completionSection{Title: title}
		for _, f := range data.Flags {
			if f.Section == title {
				sec.Flags = append(sec.Flags, f)
			}
		}
		data.Sections = append(data.Sections, sec)
	}
	return data
}

var completionFuncs = template.FuncMap{
	"join": strings.Join,
	"opts": func(flags []completionFlag) string {
		var all []string
		for _, f := range flags {
			all = append(all, f.Forms()...)
		}
		return strings.Join(all, " ")
	},
	"quote": func(words []string) string {
		q := make([]string, len(words))
		for i, w := range words {
			q[i] = "'" + w + "'"
		}
		return strings.Join(q, ", ")
	},
	"zshAction": func(f completionFlag) string {
		switch {
		case f.IsFile:
			return ":" + f.ValueName + ":_files"
		case f.IsProvider:
			return ":" + f.ValueName + ":($providers)"
		case len(f.Values) > 0:
			return ":" + f.ValueName + ":(" + strings.Join(f.Values, " ") + ")"
		case f.ValueName != "":
			return ":" + f.ValueName + ":"
		}
		return ""
	},
	"fishArgs": func(f completionFlag) string {
		switch {
		case f.IsFile:
			return " -rF"
		case len(f.Words) > 0:
			return " -xa '" + strings.Join(f.Words, " ") + "'"
		case f.ValueName != "":
			return " -x"
		}
		return ""
	},
}

var completionTemplates = template.Must(template.New("completion").Funcs(completionFuncs).Parse(`
{{- define "bash" -}}
# bash completion for mathsolve
# source <(mathsolve --completion bash)

_mathsolve_completions() {
    local cur="${COMP_WORDS[COMP_CWORD]}"
    local prev="${COMP_WORDS[COMP_CWORD-1]}"
    local opts="{{opts .Flags}}"
    local providers="{{join .Providers " "}}"
    COMPREPLY=()

    case "${prev}" in
{{- range .Flags}}{{if .IsFile}}
        {{join .Forms "|"}})
            COMPREPLY=( $(compgen -f -- "${cur}") )
            return 0
            ;;
{{- else if .IsProvider}}
        {{join .Forms "|"}})
            COMPREPLY=( $(compgen -W "${providers}" -- "${cur}") )
            return 0
            ;;
{{- else if .Words}}
        {{join .Forms "|"}})
            COMPREPLY=( $(compgen -W "{{join .Words " "}}" -- "${cur}") )
            return 0
            ;;
{{- end}}{{end}}
    esac

    [[ "${cur}" == -* ]] && COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
}

complete -F _mathsolve_completions mathsolve
{{end}}

{{- define "zsh" -}}
#compdef mathsolve

# zsh completion for mathsolve; place it on $fpath as _mathsolve

_mathsolve() {
    local -a providers
    providers=({{join .Providers " "}})

    _arguments -s \
{{- range .Flags}}
{{- if .Short}}
        '(-{{.Short}} --{{.Long}})'{-{{.Short}},--{{.Long}}}'[{{.Help}}]{{zshAction .}}' \
{{- else}}
        '--{{.Long}}[{{.Help}}]{{zshAction .}}' \
{{- end}}{{end}}
        '*:query:'
}

_mathsolve "$@"
{{end}}

{{- define "fish" -}}
# fish completion for mathsolve; save as ~/.config/fish/completions/mathsolve.fish

complete -c mathsolve -f
{{range .Sections}}
# {{.Title}}
{{- range .Flags}}
complete -c mathsolve{{if .Short}} -s {{.Short}}{{end}} -l {{.Long}} -d '{{.Help}}'{{fishArgs .}}
{{- end}}
{{end}}
{{- end}}

{{- define "powershell" -}}
# PowerShell completion for mathsolve; dot-source it from $PROFILE

Register-ArgumentCompleter -CommandName 'mathsolve' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
{{- range .Flags}}{{$help := .Help}}{{range .Forms}}
        @{Name = '{{.}}'; Description = '{{$help}}' }
{{- end}}{{end}}
    )

    $elements = $commandAst.CommandElements
    $prev = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prev) {
{{- range .Flags}}{{if .Words}}
        '--{{.Long}}' {
            @({{quote .Words}}) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
{{- end}}{{end}}
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
{{end}}
`))

// GenerateCompletion writes a completion script for shell. providers are
// the command-line spellings of the provider names.
func GenerateCompletion(out io.Writer, shell string, providers []string) error {
	name := shell
	switch shell {
	case "bash", "zsh", "fish", "powershell":
	case "ps":
		name = "powershell"
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if err := completionTemplates.ExecuteTemplate(out, name, newCompletionData(providers)); err != nil {
		return fmt.Errorf("completion %s: %w", name, err)
	}
	return nil
}
