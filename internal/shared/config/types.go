package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// SessionConfig controls the platform-signed widget session tokens.
// The secret is platform-wide and is never shared with partners.
type SessionConfig struct {
	Secret     string `mapstructure:"secret"`
	ExpMinutes int    `mapstructure:"exp_minutes"`
}

// PartnerTokenConfig controls verification of partner-signed tokens.
type PartnerTokenConfig struct {
	// ReplayTTLFloorSeconds is the minimum TTL for replay markers, applied
	// when a token is close to expiry at verification time.
	ReplayTTLFloorSeconds int `mapstructure:"replay_ttl_floor_seconds"`
}

type AuthConfig struct {
	Session      SessionConfig      `mapstructure:"session"`
	PartnerToken PartnerTokenConfig `mapstructure:"partner_token"`
}

// WidgetConfig holds widget-facing behavior knobs.
type WidgetConfig struct {
	// ClaimWindowDays is the active window for claims, both as the default
	// expiry set at claim time and as the fallback window for rows claimed
	// without an expiry date.
	ClaimWindowDays int `mapstructure:"claim_window_days"`
	// SessionRequestsPerMinute rate-limits the two session-issuing endpoints
	// per client IP. Zero disables the limiter.
	SessionRequestsPerMinute int `mapstructure:"session_requests_per_minute"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Widget   WidgetConfig   `mapstructure:"widget"`
}
