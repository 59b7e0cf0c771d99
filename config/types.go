package config

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// ExportConfig contains defaults for written documents
type ExportConfig struct {
	Path string `yaml:"path"`
	Note string `yaml:"note"`
}

// ImportConfig contains defaults for read documents
type ImportConfig struct {
	TimeoutMS int `yaml:"timeoutMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	ICO         string       `yaml:"ico" validate:"required,numeric,min=6,max=10"`
	Application string       `yaml:"application"`
	Log         LogConfig    `yaml:"log"`
	Export      ExportConfig `yaml:"export"`
	Import      ImportConfig `yaml:"import"`
}
