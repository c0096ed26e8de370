// Package audio plays word pronunciations through external commands.
package audio

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/abhisek/vocabdrill/internal/config"
	"github.com/abhisek/vocabdrill/internal/words"
)

// ErrUnavailable means neither the word's clip nor speech synthesis could
// be played.
var ErrUnavailable = errors.New("pronunciation unavailable")

// Runner executes an external command and waits for it.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return exec.CommandContext(ctx, name, args...).Run()
}

var dataURLPrefix = regexp.MustCompile(`^data:audio/([^;]+);base64,`)

// Player decodes clips into a content-addressed cache and plays them, with
// speech synthesis as the fallback.
type Player struct {
	fs       afero.Fs
	cacheDir string
	cfg      config.AudioConfig
	run      Runner
	log      *slog.Logger
}

// NewPlayer creates a Player that caches clips under cacheDir on fs.
func NewPlayer(fs afero.Fs, cacheDir string, cfg config.AudioConfig, run Runner, log *slog.Logger) *Player {
	if run == nil {
		run = ExecRunner{}
	}
	return &Player{fs: fs, cacheDir: cacheDir, cfg: cfg, run: run, log: log}
}

// Play pronounces w. The server clip is tried first; on any failure the
// English term is spoken instead.
func (p *Player) Play(ctx context.Context, w words.Word) error {
	var clipErr error
	if w.Audio.Present() {
		clipErr = p.playClip(ctx, w.Audio)
		if clipErr == nil {
			return nil
		}
		p.log.Info("clip playback failed, falling back to speech", "word", w.English, "kind", w.Audio.Kind, "err", clipErr)
	}

	speechErr := p.speak(ctx, w.English)
	if speechErr == nil {
		return nil
	}
	p.log.Info("speech failed", "word", w.English, "err", speechErr)
	return fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(clipErr, speechErr))
}

func (p *Player) playClip(ctx context.Context, a words.Audio) error {
	if len(p.cfg.Player) == 0 {
		return errors.New("no player configured")
	}
	path, err := p.Materialize(a)
	if err != nil {
		return err
	}
	name, args := expand(p.cfg.Player, map[string]string{"{file}": path}, path)
	return p.run.Run(ctx, name, args...)
}

func (p *Player) speak(ctx context.Context, text string) error {
	if len(p.cfg.Speech) == 0 {
		return errors.New("no speech command configured")
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("nothing to say")
	}
	name, args := expand(p.cfg.Speech, map[string]string{"{text}": text, "{rate}": p.cfg.SpeechRate}, text)
	return p.run.Run(ctx, name, args...)
}

// Materialize decodes a clip into the cache and returns its path. The file
// name is the hash of the payload, so repeated plays reuse the file.
func (p *Player) Materialize(a words.Audio) (string, error) {
	data := strings.TrimSpace(a.Data)
	ext := "mp3"
	if m := dataURLPrefix.FindStringSubmatch(data); m != nil {
		data = data[len(m[0]):]
		ext = extension(m[1])
	}

	sum := sha256.Sum256([]byte(data))
	path := filepath.Join(p.cacheDir, hex.EncodeToString(sum[:8])+"."+ext)
	if ok, _ := afero.Exists(p.fs, path); ok {
		return path, nil
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("decode %s clip: %w", a.Kind, err)
	}
	if err := p.fs.MkdirAll(p.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create audio cache: %w", err)
	}
	if err := afero.WriteFile(p.fs, path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write clip: %w", err)
	}
	return path, nil
}

func extension(subtype string) string {
	switch subtype {
	case "mpeg", "mp3":
		return "mp3"
	case "wav", "x-wav", "wave":
		return "wav"
	case "ogg":
		return "ogg"
	default:
		return "audio"
	}
}

// expand substitutes placeholders in a command template. When no argument
// references a placeholder, fallback is appended.
func expand(template []string, vars map[string]string, fallback string) (string, []string) {
	args := make([]string, 0, len(template))
	used := false
	for _, a := range template[1:] {
		for k, v := range vars {
			if strings.Contains(a, k) {
				if k != "{rate}" {
					used = true
				}
				a = strings.ReplaceAll(a, k, v)
			}
		}
		args = append(args, a)
	}
	if !used {
		args = append(args, fallback)
	}
	return template[0], args
}
