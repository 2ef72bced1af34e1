// Package config loads mahjongd's configuration via viper, watching the
// backing file for changes with fsnotify, grounded on
// common/config/fixed_config.go.
package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Conf is the process-wide configuration, set by Init.
var Conf *Config

type Config struct {
	AppName      string       `mapstructure:"appName"`
	Log          LogConf      `mapstructure:"log"`
	WsPort       int          `mapstructure:"wsPort"`
	MetricPort   int          `mapstructure:"metricPort"`
	DatabaseConf DatabaseConf `mapstructure:"database"`
	NatsConf     NatsConf     `mapstructure:"nats"`
	GameConf     GameConf     `mapstructure:"game"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	PoolSize     int    `mapstructure:"poolSize"`
	MinIdleConns int    `mapstructure:"minIdleConns"`
}

// NatsConf configures the pub/sub bus game events fan out over.
type NatsConf struct {
	Url     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

// GameConf holds session defaults that are product policy, not engine rules.
type GameConf struct {
	RoundWind      string `mapstructure:"roundWind"`
	StartingStreak int    `mapstructure:"startingStreak"`
}

// Init reads configFile into Conf and re-unmarshals on every change.
func Init(configFile string) {
	Conf = new(Config)
	v := viper.New()
	v.SetConfigFile(configFile)
	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		if err := v.Unmarshal(Conf); err != nil {
			panic(fmt.Errorf("config: reload failed, err:%v", err))
		}
	})

	if err := v.ReadInConfig(); err != nil {
		panic(fmt.Errorf("config: read failed, err:%v", err))
	}
	if err := v.Unmarshal(Conf); err != nil {
		panic(fmt.Errorf("config: parse failed, err:%v", err))
	}
}
