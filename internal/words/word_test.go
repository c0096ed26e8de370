package words

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantImage Image
		wantAudio Audio
	}{
		{
			name: "bare fields",
			raw:  `{"id":1,"eng":" cat ","rus":"кот"}`,
		},
		{
			name:      "inline audio string",
			raw:       `{"id":1,"eng":"cat","rus":"кот","sound_data":"data:audio/mp3;base64,AAAA"}`,
			wantAudio: Audio{Kind: AudioInline, Data: "data:audio/mp3;base64,AAAA"},
		},
		{
			name:      "gtts field",
			raw:       `{"id":1,"eng":"cat","rus":"кот","sound_data":{"gtts":"QUJD"}}`,
			wantAudio: Audio{Kind: AudioVoice, Data: "QUJD"},
		},
		{
			name:      "voice field",
			raw:       `{"id":1,"eng":"cat","rus":"кот","sound_data":{"voice":"QUJD","audio":"REVG"}}`,
			wantAudio: Audio{Kind: AudioVoice, Data: "QUJD"},
		},
		{
			name:      "audio field",
			raw:       `{"id":1,"eng":"cat","rus":"кот","sound_data":{"audio":"REVG"}}`,
			wantAudio: Audio{Kind: AudioField, Data: "REVG"},
		},
		{
			name: "unknown audio shape",
			raw:  `{"id":1,"eng":"cat","rus":"кот","sound_data":{"mp3":"REVG"}}`,
		},
		{
			name: "empty audio string",
			raw:  `{"id":1,"eng":"cat","rus":"кот","sound_data":""}`,
		},
		{
			name:      "emoji image",
			raw:       `{"id":1,"eng":"cat","rus":"кот","image_data":"🐱"}`,
			wantImage: Image{Kind: ImageEmoji, Data: "🐱"},
		},
		{
			name:      "picture image",
			raw:       `{"id":1,"eng":"cat","rus":"кот","image_data":"iVBORw0KGgoAAAANSUhEUgAAAAEAAAAB"}`,
			wantImage: Image{Kind: ImagePicture, Data: "iVBORw0KGgoAAAANSUhEUgAAAAEAAAAB"},
		},
		{
			name: "placeholder picture",
			raw:  `{"id":1,"eng":"cat","rus":"кот","image_data":"` + placeholderImage + `AAAA"}`,
		},
		{
			name:      "short base64 is a picture",
			raw:       `{"id":1,"eng":"cat","rus":"кот","image_data":"QUJD"}`,
			wantImage: Image{Kind: ImagePicture, Data: "QUJD"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w Word
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &w))
			assert.Equal(t, int64(1), w.ID)
			assert.Equal(t, "cat", w.English)
			assert.Equal(t, "кот", w.Translation)
			assert.Equal(t, tt.wantImage, w.Image)
			assert.Equal(t, tt.wantAudio, w.Audio)
		})
	}
}

func TestWordTerm(t *testing.T) {
	w := Word{English: "dog", Translation: "собака"}
	assert.Equal(t, "dog", w.Term(English))
	assert.Equal(t, "собака", w.Term(Russian))
}

func TestAudioPresent(t *testing.T) {
	assert.False(t, Audio{}.Present())
	assert.False(t, Audio{Kind: AudioInline}.Present())
	assert.True(t, Audio{Kind: AudioField, Data: "x"}.Present())
	assert.Equal(t, "voice-field", AudioVoice.String())
}
