package whisperx

// Config captures runtime settings for a transcription run.
type Config struct {
	// Backend is "whisper" or "whisperx".
	Backend string
	// Model is a size tier (e.g., "base", "large-v3") or a checkpoint path.
	Model string
	// Language is the ISO 639-1 code passed to the model.
	Language string
	// CUDAEnabled enables GPU inference.
	CUDAEnabled bool
	// VADMethod selects WhisperX voice activity detection ("silero" or "pyannote").
	VADMethod string
	// HFToken is the Hugging Face token for pyannote VAD.
	HFToken string
	// WhisperBinary and UVXBinary name the executables for each backend.
	WhisperBinary string
	UVXBinary     string
	// TempDir holds the model's output directory; empty uses os.TempDir.
	TempDir string
}

// Backend names.
const (
	BackendWhisper  = "whisper"
	BackendWhisperX = "whisperx"
)

// WhisperX configuration constants.
const (
	DefaultModel      = "base"
	DefaultLanguage   = "en"
	CUDAIndexURL      = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL      = "https://pypi.org/simple"
	BatchSize         = "4"
	ChunkSize         = "15"
	VADOnset          = "0.08"
	VADOffset         = "0.07"
	BeamSize          = "5"
	Temperature       = "0.0"
	SegmentResolution = "sentence"
	OutputFormat      = "json"
	CPUDevice         = "cpu"
	CUDADevice        = "cuda"
	CPUComputeType    = "float32"
	VADMethodPyannote = "pyannote"
	VADMethodSilero   = "silero"
)

// Command names for external tools.
const (
	WhisperCommand = "whisper"
	UVXCommand     = "uvx"
)
