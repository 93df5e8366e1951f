package wav

import (
	"errors"

	"github.com/ik5/pcmplay/audio"
)

var (
	ErrTooSmall          = errors.New("WAV data smaller than the 44-byte header")
	ErrNotRiff           = errors.New("missing RIFF marker")
	ErrNotWave           = errors.New("missing WAVE marker")
	ErrMissingFmtChunk   = errors.New("missing fmt chunk")
	ErrUnsupportedFormat = errors.New("only 16-byte PCM fmt chunks are supported")
	ErrMissingDataChunk  = errors.New("missing data chunk")
	ErrTruncatedData     = errors.New("data chunk exceeds available bytes")

	// ErrInvalidFrameGeometry is shared with the audio package so that
	// errors.Is works no matter which layer rejected the geometry.
	ErrInvalidFrameGeometry = audio.ErrInvalidFrameGeometry

	// ErrMalformedChunks is returned by the chunk decoder when the RIFF
	// chunk list itself cannot be walked.
	ErrMalformedChunks = errors.New("malformed RIFF chunk list")
)
