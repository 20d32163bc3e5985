// Package wizard collects project configuration interactively and renders
// the .legalmcp.yaml config file.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vinothezhumalai/legalmcpserver/internal/config"
)

// ConfigSpec holds all fields collected during the interactive wizard.
type ConfigSpec struct {
	Model           string
	MaxTokens       int
	HistoryCapacity int
	CacheEnabled    bool
	CacheDir        string
}

const configYAMLTemplate = `# legalmcp project configuration
oracle:
  model: {{ .Model }}
  max_tokens: {{ .MaxTokens }}
history:
  capacity: {{ .HistoryCapacity }}
cache:
  enabled: {{ .CacheEnabled }}
  dir: {{ .CacheDir }}
`

// RunConfigWizard runs an interactive huh form to collect project settings.
func RunConfigWizard(in io.Reader, out io.Writer) (*ConfigSpec, error) {
	var (
		model       = config.DefaultModel
		maxTokens   = strconv.Itoa(config.DefaultMaxTokens)
		capacity    = strconv.Itoa(config.DefaultHistoryCapacity)
		cacheChoice bool
		cacheDir    = config.DefaultCacheDir
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Oracle model").
				Description("The model used for analysis and judging").
				Value(&model).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("model is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Max tokens per response").
				Value(&maxTokens).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("History capacity").
				Description("How many past evaluations to retain for trends").
				Value(&capacity).
				Validate(validatePositiveInt),
			huh.NewConfirm().
				Title("Cache document analyses on disk?").
				Value(&cacheChoice),
			huh.NewInput().
				Title("Cache directory").
				Value(&cacheDir),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	tokens, err := strconv.Atoi(strings.TrimSpace(maxTokens))
	if err != nil {
		return nil, fmt.Errorf("invalid max tokens: %w", err)
	}
	retain, err := strconv.Atoi(strings.TrimSpace(capacity))
	if err != nil {
		return nil, fmt.Errorf("invalid history capacity: %w", err)
	}

	return &ConfigSpec{
		Model:           strings.TrimSpace(model),
		MaxTokens:       tokens,
		HistoryCapacity: retain,
		CacheEnabled:    cacheChoice,
		CacheDir:        strings.TrimSpace(cacheDir),
	}, nil
}

// GenerateConfigYAML renders a .legalmcp.yaml from the given spec.
func GenerateConfigYAML(spec *ConfigSpec) (string, error) {
	tmpl, err := template.New("configyaml").Parse(configYAMLTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}
