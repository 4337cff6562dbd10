package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/nazaclinic/booking-api/internal/model"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Clinic   ClinicConfig   `mapstructure:"clinic"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	URL          string `mapstructure:"url"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

type AuthConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
	BcryptCost  int    `mapstructure:"bcrypt_cost"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// ClinicConfig is the static schedule and treatment catalog, loaded once at
// startup and treated as immutable reference data from then on.
type ClinicConfig struct {
	OpenDays     []int             `mapstructure:"open_days"`
	OpenTime     string            `mapstructure:"open_time"`
	CloseTime    string            `mapstructure:"close_time"`
	SlotDuration int               `mapstructure:"slot_duration"`
	Treatments   []TreatmentConfig `mapstructure:"treatments"`
}

type TreatmentConfig struct {
	ID       int    `mapstructure:"id"`
	NameEN   string `mapstructure:"name_en"`
	NameKU   string `mapstructure:"name_ku"`
	Duration int    `mapstructure:"duration"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// WeeklySchedule converts the raw clinic config into the domain value.
func (c ClinicConfig) WeeklySchedule() (model.WeeklySchedule, error) {
	open, err := model.ParseTimeOfDay(c.OpenTime)
	if err != nil {
		return model.WeeklySchedule{}, fmt.Errorf("invalid open_time: %w", err)
	}
	close, err := model.ParseTimeOfDay(c.CloseTime)
	if err != nil {
		return model.WeeklySchedule{}, fmt.Errorf("invalid close_time: %w", err)
	}

	days := make([]time.Weekday, 0, len(c.OpenDays))
	for _, d := range c.OpenDays {
		if d < 0 || d > 6 {
			return model.WeeklySchedule{}, fmt.Errorf("invalid open day %d", d)
		}
		days = append(days, time.Weekday(d))
	}

	week := model.WeeklySchedule{
		OpenDays:           days,
		OpenTime:           open,
		CloseTime:          close,
		GranularityMinutes: c.SlotDuration,
	}
	if err := week.Validate(); err != nil {
		return model.WeeklySchedule{}, err
	}
	return week, nil
}

// TreatmentCatalog builds the catalog from config.
func (c ClinicConfig) TreatmentCatalog() (*model.TreatmentCatalog, error) {
	treatments := make([]model.Treatment, 0, len(c.Treatments))
	for _, t := range c.Treatments {
		if t.Duration <= 0 {
			return nil, fmt.Errorf("treatment %d: duration must be positive", t.ID)
		}
		treatments = append(treatments, model.Treatment{
			ID:              t.ID,
			NameEN:          t.NameEN,
			NameKU:          t.NameKU,
			DurationMinutes: t.Duration,
		})
	}
	return model.NewTreatmentCatalog(treatments), nil
}
