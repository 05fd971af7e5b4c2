// internal/config/config.go
package config

// DefaultModel is offered by the interactive model prompt and used whenever
// no custom model is supplied.
const DefaultModel = "gpt-3.5-turbo-16k"

type Config struct {
	// Summarization
	Model      string  `yaml:"model"`
	Endpoint   string  `yaml:"endpoint"`
	MaxFiles   int     `yaml:"max_files"`
	BatchDelay float64 `yaml:"batch_delay"` // seconds between API calls

	// Classification
	TextExtensions []string `yaml:"text_extensions"`
}

func NewConfig() *Config {
	return &Config{
		Model:          DefaultModel,
		Endpoint:       "https://api.openai.com/v1/chat/completions",
		MaxFiles:       100,
		BatchDelay:     5.0,
		TextExtensions: defaultTextExtensions(),
	}
}

// defaultTextExtensions is the built-in allow-list of extensions treated as
// text without any content sampling.
func defaultTextExtensions() []string {
	return []string{
		".txt", ".md", ".rst", ".adoc",
		".go", ".py", ".js", ".jsx", ".ts", ".tsx", ".rb", ".rs", ".java",
		".c", ".h", ".cc", ".cpp", ".hpp", ".cs", ".swift", ".kt", ".scala",
		".php", ".pl", ".lua", ".r", ".dart", ".ex", ".exs", ".erl", ".hs",
		".sh", ".bash", ".zsh", ".fish", ".ps1", ".bat",
		".html", ".htm", ".css", ".scss", ".less", ".svg",
		".json", ".yaml", ".yml", ".toml", ".ini", ".cfg", ".conf", ".env",
		".xml", ".csv", ".tsv", ".sql", ".graphql", ".proto",
		".tf", ".tfvars", ".mk", ".cmake",
		".tex", ".bib", ".org", ".log",
	}
}
