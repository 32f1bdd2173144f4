package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Settings are operator-tunable values read from settings.yml and reloaded
// while the process runs.
type Settings struct {
	Pagination PaginationSettings `mapstructure:"pagination"`
	Audit      AuditSettings      `mapstructure:"audit"`
	Media      MediaSettings      `mapstructure:"media"`
}

type PaginationSettings struct {
	DefaultLimit int `mapstructure:"defaultLimit"`
	MaxLimit     int `mapstructure:"maxLimit"`
}

type AuditSettings struct {
	ListLimit int `mapstructure:"listLimit"`
}

type MediaSettings struct {
	MaxDimension int   `mapstructure:"maxDimension"`
	JPEGQuality  int   `mapstructure:"jpegQuality"`
	MaxImages    int   `mapstructure:"maxImages"`
	MaxBytes     int64 `mapstructure:"maxBytes"`
}

func DefaultSettings() Settings {
	return Settings{
		Pagination: PaginationSettings{DefaultLimit: 20, MaxLimit: 100},
		Audit:      AuditSettings{ListLimit: 100},
		Media: MediaSettings{
			MaxDimension: 1600,
			JPEGQuality:  75,
			MaxImages:    5,
			MaxBytes:     8 << 20,
		},
	}
}

type SettingsHolder struct {
	current atomic.Value // holds Settings
}

// NewStaticSettings returns a holder that never reloads.
func NewStaticSettings(s Settings) *SettingsHolder {
	holder := &SettingsHolder{}
	holder.current.Store(s)
	return holder
}

func NewSettingsHolder(log *zap.Logger) (*SettingsHolder, error) {
	log = log.Named("config.settings")
	v := viper.New()

	v.SetConfigName("settings")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/hoteldesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("HOTELDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultSettings()
	v.SetDefault("settings.pagination.defaultLimit", defaults.Pagination.DefaultLimit)
	v.SetDefault("settings.pagination.maxLimit", defaults.Pagination.MaxLimit)
	v.SetDefault("settings.audit.listLimit", defaults.Audit.ListLimit)
	v.SetDefault("settings.media.maxDimension", defaults.Media.MaxDimension)
	v.SetDefault("settings.media.jpegQuality", defaults.Media.JPEGQuality)
	v.SetDefault("settings.media.maxImages", defaults.Media.MaxImages)
	v.SetDefault("settings.media.maxBytes", defaults.Media.MaxBytes)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileLoaded = false
	}

	settings, err := decodeSettings(v)
	if err != nil {
		return nil, err
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	holder := NewStaticSettings(settings)
	if !fileLoaded {
		return holder, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeSettings(v)
		if err != nil {
			log.Warn("settings reload failed", zap.Error(err))
			return
		}
		if err := validateSettings(updated); err != nil {
			log.Warn("invalid settings ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("settings reloaded", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return holder, nil
}

// decodeSettings goes through AllSettings so file values merge with defaults.
func decodeSettings(v *viper.Viper) (Settings, error) {
	var wrapper struct {
		Settings Settings `mapstructure:"settings"`
	}
	if err := v.Unmarshal(&wrapper); err != nil {
		return Settings{}, err
	}
	return wrapper.Settings, nil
}

func (h *SettingsHolder) Get() Settings {
	if h == nil {
		return DefaultSettings()
	}
	s, ok := h.current.Load().(Settings)
	if !ok {
		return DefaultSettings()
	}
	return s
}

func validateSettings(s Settings) error {
	if s.Pagination.DefaultLimit <= 0 || s.Pagination.MaxLimit < s.Pagination.DefaultLimit {
		return errors.New("settings.pagination: defaultLimit must be positive and not above maxLimit")
	}
	if s.Audit.ListLimit <= 0 {
		return errors.New("settings.audit.listLimit must be positive")
	}
	if s.Media.MaxDimension <= 0 {
		return errors.New("settings.media.maxDimension must be positive")
	}
	if s.Media.JPEGQuality < 1 || s.Media.JPEGQuality > 100 {
		return errors.New("settings.media.jpegQuality must be within 1..100")
	}
	if s.Media.MaxImages <= 0 || s.Media.MaxBytes <= 0 {
		return errors.New("settings.media limits must be positive")
	}
	return nil
}
