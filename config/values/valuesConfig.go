package values

type Config interface {
}

// SyncValues carries the tunables of one reconciliation run. Category-specific
// naming quirks (which keyword marks a "model" attribute, which symbol stands
// for a diameter) are configuration, not code paths.
type SyncValues struct {
	RequestsPerMinute int `yaml:"requests-per-minute"`
	MaxRetries        int `yaml:"max-retries"`
	RetryIntervalMs   int `yaml:"retry-interval-ms"`
	VisibilityRetries int `yaml:"visibility-retries"`
	PageSize          int `yaml:"page-size"`

	OptionName       string            `yaml:"option-name"`
	LabelLocale      string            `yaml:"label-locale"`
	ModelKeywords    []string          `yaml:"model-keywords"`
	AttributeSymbols map[string]string `yaml:"attribute-symbols"`
}

func DefaultSyncValues() SyncValues {
	return SyncValues{
		RequestsPerMinute: 40,
		MaxRetries:        3,
		RetryIntervalMs:   2000,
		VisibilityRetries: 5,
		PageSize:          100,
		OptionName:        "Вариант",
		LabelLocale:       "bg",
		ModelKeywords:     []string{"model", "модел", "модель"},
		AttributeSymbols: map[string]string{
			"ф": "Ø",
			"⌀": "Ø",
		},
	}
}

// Merge fills zero-valued fields from the defaults so a partial yaml block
// still yields a usable configuration.
func (v SyncValues) Merge() SyncValues {
	def := DefaultSyncValues()
	if v.RequestsPerMinute == 0 {
		v.RequestsPerMinute = def.RequestsPerMinute
	}
	if v.MaxRetries == 0 {
		v.MaxRetries = def.MaxRetries
	}
	if v.RetryIntervalMs == 0 {
		v.RetryIntervalMs = def.RetryIntervalMs
	}
	if v.VisibilityRetries == 0 {
		v.VisibilityRetries = def.VisibilityRetries
	}
	if v.PageSize == 0 {
		v.PageSize = def.PageSize
	}
	if v.OptionName == "" {
		v.OptionName = def.OptionName
	}
	if v.LabelLocale == "" {
		v.LabelLocale = def.LabelLocale
	}
	if len(v.ModelKeywords) == 0 {
		v.ModelKeywords = def.ModelKeywords
	}
	if len(v.AttributeSymbols) == 0 {
		v.AttributeSymbols = def.AttributeSymbols
	}
	return v
}
