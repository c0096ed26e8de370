package host

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abhisek/vocabdrill/internal/config"
)

// ColorScheme is the host display hint.
type ColorScheme string

const (
	SchemeDark  ColorScheme = "dark"
	SchemeLight ColorScheme = "light"
)

// Identity is who the host says the learner is.
type Identity struct {
	User        tgbotapi.User
	ColorScheme ColorScheme

	// Placeholder is true when no host identity was available.
	Placeholder bool
}

// PlaceholderUser stands in when the app runs outside a host.
var PlaceholderUser = tgbotapi.User{
	ID:        123456789,
	FirstName: "Test",
	LastName:  "User",
	UserName:  "testuser",
}

// DisplayName returns the first name, falling back to the username.
func (id Identity) DisplayName() string {
	if id.User.FirstName != "" {
		return id.User.FirstName
	}
	if id.User.UserName != "" {
		return id.User.UserName
	}
	return "User"
}

// ParseInitData extracts the user object from a Telegram WebApp initData
// query string ("query_id=...&user=%7B...%7D&auth_date=...&hash=...").
// The signature is not checked; authentication belongs to the backend.
func ParseInitData(raw string) (tgbotapi.User, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return tgbotapi.User{}, fmt.Errorf("parse init data: %w", err)
	}
	userJSON := values.Get("user")
	if userJSON == "" {
		return tgbotapi.User{}, fmt.Errorf("init data has no user")
	}
	var u tgbotapi.User
	if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
		return tgbotapi.User{}, fmt.Errorf("decode init data user: %w", err)
	}
	if u.ID == 0 {
		return tgbotapi.User{}, fmt.Errorf("init data user has no id")
	}
	return u, nil
}

// Resolve builds the identity from configuration: init data first, then the
// explicit identity fields, then the placeholder.
func Resolve(cfg config.IdentityConfig) (Identity, error) {
	id := Identity{ColorScheme: parseScheme(cfg.ColorScheme)}

	if cfg.InitData != "" {
		u, err := ParseInitData(cfg.InitData)
		if err != nil {
			id.User = PlaceholderUser
			id.Placeholder = true
			return id, err
		}
		id.User = u
		return id, nil
	}

	if cfg.UserID != 0 {
		id.User = tgbotapi.User{
			ID:        cfg.UserID,
			FirstName: cfg.FirstName,
			LastName:  cfg.LastName,
			UserName:  cfg.Username,
		}
		return id, nil
	}

	id.User = PlaceholderUser
	id.Placeholder = true
	return id, nil
}

func parseScheme(s string) ColorScheme {
	if strings.EqualFold(s, string(SchemeLight)) {
		return SchemeLight
	}
	return SchemeDark
}
