package config

const (
	defaultStateDir          = "~/.local/share/lectern/state"
	defaultLogDir            = "~/.local/share/lectern/logs"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultPollInterval      = 10
	defaultBatchSize         = 5
	defaultVisibilityTimeout = 120
	defaultTTSBaseURL        = "https://api.openai.com"
	defaultTTSModel          = "tts-1-hd"
	defaultTTSVoice          = "ash"
	defaultTTSTimeoutSeconds = 300
	defaultNotifyTimeout     = 10
	defaultPodcastTitle      = "Lectern"
	defaultPodcastLanguage   = "en-us"
	defaultPodcastCategory   = "News"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Storage: Storage{
			UseSSL: true,
		},
		Queue: Queue{
			PollInterval:      defaultPollInterval,
			BatchSize:         defaultBatchSize,
			VisibilityTimeout: defaultVisibilityTimeout,
		},
		TTS: TTS{
			BaseURL:        defaultTTSBaseURL,
			Model:          defaultTTSModel,
			Voice:          defaultTTSVoice,
			TimeoutSeconds: defaultTTSTimeoutSeconds,
		},
		Podcast: Podcast{
			Title:           defaultPodcastTitle,
			Description:     "Automated audio versions of selected email newsletters.",
			Language:        defaultPodcastLanguage,
			DefaultCategory: defaultPodcastCategory,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
