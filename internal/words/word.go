// Package words fetches vocabulary from the backend and normalizes its
// loosely-typed media payloads.
package words

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ImageKind tags the illustration attached to a word.
type ImageKind int

const (
	ImageNone ImageKind = iota
	ImageEmoji
	ImagePicture // base64-encoded raster image
)

// Image is a word's illustration.
type Image struct {
	Kind ImageKind
	Data string
}

// AudioKind tags where a word's pronunciation came from.
type AudioKind int

const (
	AudioNone AudioKind = iota
	// AudioInline is a bare base64 string in sound_data.
	AudioInline
	// AudioVoice is sound_data.voice (or the older sound_data.gtts).
	AudioVoice
	// AudioField is sound_data.audio.
	AudioField
)

func (k AudioKind) String() string {
	switch k {
	case AudioInline:
		return "inline-base64"
	case AudioVoice:
		return "voice-field"
	case AudioField:
		return "audio-field"
	default:
		return "none"
	}
}

// Audio is a word's pronunciation clip, base64 encoded, possibly with a
// data-URL prefix.
type Audio struct {
	Kind AudioKind
	Data string
}

// Present reports whether there is a clip to play.
func (a Audio) Present() bool {
	return a.Kind != AudioNone && a.Data != ""
}

// Word is a vocabulary entry. Words are immutable once fetched.
type Word struct {
	ID          int64
	English     string
	Translation string
	Transcript  string
	Image       Image
	Audio       Audio
}

// Lang selects one side of a word.
type Lang int

const (
	English Lang = iota
	Russian
)

// Term returns the word's value in lang.
func (w Word) Term(lang Lang) string {
	if lang == Russian {
		return w.Translation
	}
	return w.English
}

type wireWord struct {
	ID         int64           `json:"id"`
	Eng        string          `json:"eng"`
	Rus        string          `json:"rus"`
	Transcript string          `json:"transcript"`
	ImageData  json.RawMessage `json:"image_data"`
	SoundData  json.RawMessage `json:"sound_data"`
}

// UnmarshalJSON decodes the backend representation and resolves the media
// payloads into their tagged forms.
func (w *Word) UnmarshalJSON(data []byte) error {
	var raw wireWord
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode word: %w", err)
	}
	*w = Word{
		ID:          raw.ID,
		English:     strings.TrimSpace(raw.Eng),
		Translation: strings.TrimSpace(raw.Rus),
		Transcript:  strings.TrimSpace(raw.Transcript),
		Image:       resolveImage(raw.ImageData),
		Audio:       resolveAudio(raw.SoundData),
	}
	return nil
}

// placeholderImage is the prefix of the stock picture the catalogue uses for
// words without a real illustration.
const placeholderImage = "iVBORw0KGgoAAAANSUhEUgAAAH8AAAB/CAIAAABJ34pEAAAAGXRFWHRTb2Z0d2FyZQBBZG9iZSBJbWFnZVJlYWR5ccllPAAAAyJp"

func resolveImage(raw json.RawMessage) Image {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return Image{}
	}
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Image{}
	case strings.HasPrefix(s, placeholderImage):
		return Image{}
	case utf8.RuneCountInString(s) <= 10 && !isBase64Start(s):
		return Image{Kind: ImageEmoji, Data: s}
	default:
		return Image{Kind: ImagePicture, Data: s}
	}
}

func isBase64Start(s string) bool {
	c := s[0]
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '+' || c == '/'
}

func resolveAudio(raw json.RawMessage) Audio {
	if len(raw) == 0 {
		return Audio{}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			return Audio{Kind: AudioInline, Data: s}
		}
		return Audio{}
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Audio{}
	}
	for _, f := range []struct {
		key  string
		kind AudioKind
	}{
		{"gtts", AudioVoice},
		{"voice", AudioVoice},
		{"audio", AudioField},
	} {
		if v, ok := obj[f.key].(string); ok && strings.TrimSpace(v) != "" {
			return Audio{Kind: f.kind, Data: strings.TrimSpace(v)}
		}
	}
	return Audio{}
}

// IDs returns the ids of ws in order.
func IDs(ws []Word) []int64 {
	ids := make([]int64, len(ws))
	for i, w := range ws {
		ids[i] = w.ID
	}
	return ids
}
