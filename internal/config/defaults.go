package config

const (
	defaultConfigPath  = "~/.config/vidscribe/config.toml"
	projectConfigName  = "vidscribe.toml"
	defaultBackend     = BackendWhisper
	defaultModel       = "base"
	defaultLanguage    = "en"
	defaultTimeFormat  = "minutes_seconds"
	defaultDevice      = DeviceCPU
	defaultVADMethod   = VADMethodSilero
	defaultFFmpeg      = "ffmpeg"
	defaultFFprobe     = "ffprobe"
	defaultWhisper     = "whisper"
	defaultUVX         = "uvx"
	defaultLogFormat   = LogFormatAuto
	defaultLogLevel    = "info"
	modelEnvVar        = "VIDSCRIBE_MODEL"
	languageEnvVar     = "VIDSCRIBE_LANGUAGE"
	backendEnvVar      = "VIDSCRIBE_BACKEND"
	timeFormatEnvVar   = "VIDSCRIBE_TIME_FORMAT"
	hfTokenEnvVar      = "HF_TOKEN"
	hfHubTokenEnvVar   = "HUGGING_FACE_HUB_TOKEN"
	tempDirEnvVar      = "VIDSCRIBE_TMPDIR"
	logLevelEnvVar     = "VIDSCRIBE_LOG_LEVEL"
	customModelPathExt = ".pt"
)

// Backend names.
const (
	BackendWhisper  = "whisper"
	BackendWhisperX = "whisperx"
)

// Device names.
const (
	DeviceCPU  = "cpu"
	DeviceCUDA = "cuda"
)

// VAD methods understood by WhisperX.
const (
	VADMethodSilero   = "silero"
	VADMethodPyannote = "pyannote"
)

// Log formats.
const (
	LogFormatAuto    = "auto"
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// ModelTiers lists the pretrained model sizes both backends can load.
var ModelTiers = []string{
	"tiny", "tiny.en",
	"base", "base.en",
	"small", "small.en",
	"medium", "medium.en",
	"large", "large-v1", "large-v2", "large-v3",
	"large-v3-turbo", "turbo",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Transcription: Transcription{
			Backend:    defaultBackend,
			Model:      defaultModel,
			Language:   defaultLanguage,
			TimeFormat: defaultTimeFormat,
			Device:     defaultDevice,
			VADMethod:  defaultVADMethod,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
			Whisper: defaultWhisper,
			UVX:     defaultUVX,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
