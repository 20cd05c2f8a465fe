// Package config loads and validates service configuration from an optional
// file plus LEGAL_DIGEST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/legal-digest/internal/extraction"
	"github.com/jonathan/legal-digest/internal/types"
)

// EnvPrefix is the prefix for environment overrides (LEGAL_DIGEST_ANALYSIS_CHUNK_SIZE, ...)
const EnvPrefix = "LEGAL_DIGEST"

// Config is the complete service configuration
type Config struct {
	Server        ServerConfig       `mapstructure:"server"`
	LLM           LLMConfig          `mapstructure:"llm"`
	HuggingFace   HuggingFaceConfig  `mapstructure:"huggingface"`
	Analysis      AnalysisConfig     `mapstructure:"analysis"`
	Collaborators CollaboratorConfig `mapstructure:"collaborators"`
	SMTP          SMTPConfig         `mapstructure:"smtp"`
	Report        ReportConfig       `mapstructure:"report"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           int           `mapstructure:"port" validate:"gt=0,lte=65535"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

// LLMConfig selects the model provider and Gemini settings
type LLMConfig struct {
	Provider    string  `mapstructure:"provider" validate:"oneof=gemini huggingface"`
	APIKey      string  `mapstructure:"api_key"`
	LiteModel   string  `mapstructure:"lite_model" validate:"required"`
	Model       string  `mapstructure:"model" validate:"required"`
	Temperature float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

// HuggingFaceConfig holds Inference API settings
type HuggingFaceConfig struct {
	APIToken           string `mapstructure:"api_token"`
	Endpoint           string `mapstructure:"endpoint" validate:"required,url"`
	SummarizationModel string `mapstructure:"summarization_model" validate:"required"`
	QAModel            string `mapstructure:"qa_model" validate:"required"`
}

// AnalysisConfig holds the pipeline caps and thresholds
type AnalysisConfig struct {
	ChunkSize          int                       `mapstructure:"chunk_size" validate:"gt=0"`
	SummaryMinLength   int                       `mapstructure:"summary_min_length" validate:"gte=0,ltefield=SummaryMaxLength"`
	SummaryMaxLength   int                       `mapstructure:"summary_max_length" validate:"gt=0"`
	SummaryConcurrency int                       `mapstructure:"summary_concurrency" validate:"gt=0"`
	KeywordTopN        int                       `mapstructure:"keyword_top_n" validate:"gt=0"`
	ClauseCap          int                       `mapstructure:"clause_cap" validate:"gt=0"`
	ClauseMinLength    int                       `mapstructure:"clause_min_length" validate:"gte=0"`
	RiskCap            int                       `mapstructure:"risk_cap" validate:"gt=0"`
	RiskMinLength      int                       `mapstructure:"risk_min_length" validate:"gte=0"`
	RiskVocabulary     extraction.RiskVocabulary `mapstructure:"risk_vocabulary" validate:"min=1"`
}

// CollaboratorConfig bounds every model call
type CollaboratorConfig struct {
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxAttempts    int           `mapstructure:"max_attempts" validate:"gte=1,lte=10"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff" validate:"gte=0"`
}

// SMTPConfig holds outgoing mail settings
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from" validate:"omitempty,email"`
}

// ReportConfig selects the PDF engine
type ReportConfig struct {
	Engine        string        `mapstructure:"engine" validate:"oneof=latex browser"`
	RenderTimeout time.Duration `mapstructure:"render_timeout" validate:"gt=0"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   300 * time.Second,
			MaxUploadBytes: 20 << 20,
		},
		LLM: LLMConfig{
			Provider:    "gemini",
			LiteModel:   "gemini-2.5-flash-lite",
			Model:       "gemini-2.5-flash",
			Temperature: 0,
		},
		HuggingFace: HuggingFaceConfig{
			Endpoint:           "https://api-inference.huggingface.co/models",
			SummarizationModel: "facebook/bart-large-cnn",
			QAModel:            "distilbert-base-cased-distilled-squad",
		},
		Analysis: AnalysisConfig{
			ChunkSize:          1000,
			SummaryMinLength:   40,
			SummaryMaxLength:   150,
			SummaryConcurrency: 4,
			KeywordTopN:        extraction.DefaultClauseTopN,
			ClauseCap:          extraction.DefaultClauseCap,
			ClauseMinLength:    extraction.DefaultClauseMinLength,
			RiskCap:            extraction.DefaultRiskCap,
			RiskMinLength:      extraction.DefaultRiskMinLength,
			RiskVocabulary:     extraction.DefaultRiskVocabulary(),
		},
		Collaborators: CollaboratorConfig{
			Timeout:        60 * time.Second,
			MaxAttempts:    3,
			InitialBackoff: 500 * time.Millisecond,
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
		Report: ReportConfig{
			Engine:        "latex",
			RenderTimeout: 30 * time.Second,
		},
	}
}

// Load reads configuration from path (optional) and the environment.
// Values resolve in order: environment, file, defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Conventional variable names used by the model SDKs
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.HuggingFace.APIToken == "" {
		cfg.HuggingFace.APIToken = os.Getenv("HF_API_TOKEN")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.max_upload_bytes", d.Server.MaxUploadBytes)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.lite_model", d.LLM.LiteModel)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.temperature", d.LLM.Temperature)

	v.SetDefault("huggingface.api_token", d.HuggingFace.APIToken)
	v.SetDefault("huggingface.endpoint", d.HuggingFace.Endpoint)
	v.SetDefault("huggingface.summarization_model", d.HuggingFace.SummarizationModel)
	v.SetDefault("huggingface.qa_model", d.HuggingFace.QAModel)

	v.SetDefault("analysis.chunk_size", d.Analysis.ChunkSize)
	v.SetDefault("analysis.summary_min_length", d.Analysis.SummaryMinLength)
	v.SetDefault("analysis.summary_max_length", d.Analysis.SummaryMaxLength)
	v.SetDefault("analysis.summary_concurrency", d.Analysis.SummaryConcurrency)
	v.SetDefault("analysis.keyword_top_n", d.Analysis.KeywordTopN)
	v.SetDefault("analysis.clause_cap", d.Analysis.ClauseCap)
	v.SetDefault("analysis.clause_min_length", d.Analysis.ClauseMinLength)
	v.SetDefault("analysis.risk_cap", d.Analysis.RiskCap)
	v.SetDefault("analysis.risk_min_length", d.Analysis.RiskMinLength)

	vocab := make([]map[string]any, 0, len(d.Analysis.RiskVocabulary))
	for _, rt := range d.Analysis.RiskVocabulary {
		vocab = append(vocab, map[string]any{"term": rt.Term, "severity": string(rt.Severity)})
	}
	v.SetDefault("analysis.risk_vocabulary", vocab)

	v.SetDefault("collaborators.timeout", d.Collaborators.Timeout)
	v.SetDefault("collaborators.max_attempts", d.Collaborators.MaxAttempts)
	v.SetDefault("collaborators.initial_backoff", d.Collaborators.InitialBackoff)

	v.SetDefault("smtp.host", d.SMTP.Host)
	v.SetDefault("smtp.port", d.SMTP.Port)
	v.SetDefault("smtp.username", d.SMTP.Username)
	v.SetDefault("smtp.password", d.SMTP.Password)
	v.SetDefault("smtp.from", d.SMTP.From)

	v.SetDefault("report.engine", d.Report.Engine)
	v.SetDefault("report.render_timeout", d.Report.RenderTimeout)
}

// Validate checks ranges and enumerations. Failures are reported as
// *types.ConfigurationError naming the first offending field.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &types.ConfigurationError{
				Field:   fe.Namespace(),
				Message: describe(fe),
			}
		}
		return &types.ConfigurationError{Message: err.Error()}
	}

	if err := c.Analysis.RiskVocabulary.Validate(); err != nil {
		return err
	}

	if c.LLM.Provider == "huggingface" && c.HuggingFace.APIToken == "" {
		return &types.ConfigurationError{
			Field:   "Config.HuggingFace.APIToken",
			Message: "required when llm.provider is huggingface",
		}
	}
	return nil
}

// describe renders a validator failure as a short message
func describe(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("failed %s=%s (got %v)", fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("failed %s (got %v)", fe.Tag(), fe.Value())
}
