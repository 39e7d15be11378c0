package config

const (
	defaultConfigPath     = "~/.config/captioner/config.toml"
	defaultStateDir       = "~/.local/share/captioner"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultMaxChars       = 42
	defaultPauseThreshold = 0.7
	defaultMinCueDuration = 0.5
	defaultFFprobeBinary  = "ffprobe"

	ModeSentence = "sentence"
	ModeSpan     = "span"

	FormatSRT = "srt"
	FormatVTT = "vtt"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Segmentation: Segmentation{
			MaxChars:       defaultMaxChars,
			PauseThreshold: defaultPauseThreshold,
			Mode:           ModeSentence,
			MinCueDuration: defaultMinCueDuration,
		},
		Output: Output{
			Format: FormatSRT,
		},
		Media: Media{
			FFprobeBinary: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
