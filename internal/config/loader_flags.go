package config

import (
	"time"

	"github.com/spf13/pflag"
)

const flagConfig = "config"

// flagValues receives parsed command line flags before they are applied
type flagValues struct {
	// MQTT flags
	user                 string
	password             string
	clientID             string
	host                 string
	port                 int
	waitTime             int
	qos                  uint8
	topic                string
	keepAlive            time.Duration
	connectTimeout       time.Duration
	writeTimeout         time.Duration
	subscribeTimeout     time.Duration
	completionTimeout    time.Duration
	maxReconnectInterval time.Duration
	disconnectTimeout    uint
	persistenceDir       string
	caCert               string
	clientCert           string
	clientKey            string
	insecureSkip         bool

	// Job flags
	numMessages int
	interval    time.Duration
	payloadFile string

	// Stats flags
	redisAddress   string
	redisKeyPrefix string
	redisTTL       time.Duration

	configFile string
}

// newFlagSet registers flags for the role. Help output shows the role defaults;
// only flags explicitly set on the command line are applied.
func newFlagSet(defaults *Config) (*pflag.FlagSet, *flagValues) {
	fs := pflag.NewFlagSet(string(defaults.Role), pflag.ContinueOnError)
	fs.SortFlags = false
	v := &flagValues{}
	m := defaults.MQTT

	// Option names keep the camelCase spelling used by existing deployments
	fs.StringVar(&v.user, "user", m.User, "broker username")
	fs.StringVar(&v.password, "password", m.Password, "broker password")
	fs.StringVar(&v.clientID, "clientId", m.ClientID, "MQTT client identifier ("+SentinelClientID+" generates a UUID)")
	fs.StringVar(&v.host, "host", m.Host, "broker host")
	fs.IntVar(&v.port, "port", m.Port, "broker port; 1883 selects tcp, anything else ssl")
	fs.IntVar(&v.waitTime, "waitTime", m.WaitTime, "wait hint (unused)")
	fs.Uint8Var(&v.qos, "qos", m.QoS, "MQTT QoS (0, 1, or 2)")
	fs.StringVar(&v.topic, "topic", m.Topic, "topic to publish or subscribe to")
	fs.IntVar(&v.numMessages, "numMessages", defaults.Job.NumMessages, "messages to send or receive before exiting")

	fs.DurationVar(&v.keepAlive, "keep-alive", m.KeepAlive, "MQTT keep-alive interval")
	fs.DurationVar(&v.connectTimeout, "connect-timeout", m.ConnectTimeout, "MQTT connect timeout")
	fs.DurationVar(&v.writeTimeout, "write-timeout", m.WriteTimeout, "MQTT write timeout")
	fs.DurationVar(&v.subscribeTimeout, "subscribe-timeout", m.SubscribeTimeout, "MQTT subscribe timeout")
	fs.DurationVar(&v.completionTimeout, "completion-timeout", m.CompletionTimeout, "publish completion timeout")
	fs.DurationVar(&v.maxReconnectInterval, "max-reconnect-interval", m.MaxReconnectInterval, "MQTT max reconnect interval")
	fs.UintVar(&v.disconnectTimeout, "disconnect-timeout", m.DisconnectTimeout, "MQTT disconnect quiesce (ms)")
	fs.StringVar(&v.persistenceDir, "persistence-dir", m.PersistenceDir, "directory for in-flight message persistence (empty for memory)")
	fs.StringVar(&v.caCert, "ca-cert", m.CACert, "CA certificate path for ssl")
	fs.StringVar(&v.clientCert, "client-cert", m.ClientCert, "client certificate path for ssl")
	fs.StringVar(&v.clientKey, "client-key", m.ClientKey, "client key path for ssl")
	fs.BoolVar(&v.insecureSkip, "tls-insecure-skip", m.InsecureSkip, "skip TLS verification")

	if defaults.Role == RoleProducer {
		fs.DurationVar(&v.interval, "interval", defaults.Job.Interval, "delay before each publish")
		fs.StringVar(&v.payloadFile, "file", defaults.Job.PayloadFile, "file whose contents are published")
	}

	fs.StringVar(&v.redisAddress, "redis-address", defaults.Stats.RedisAddress, "Redis address for progress stats (empty disables)")
	fs.StringVar(&v.redisKeyPrefix, "redis-key-prefix", defaults.Stats.KeyPrefix, "Redis key prefix")
	fs.DurationVar(&v.redisTTL, "redis-ttl", defaults.Stats.TTL, "Redis progress snapshot TTL")

	fs.StringVar(&v.configFile, flagConfig, "", "YAML configuration file")

	return fs, v
}

// applyFlags applies explicitly set command line flags to the configuration
func applyFlags(fs *pflag.FlagSet, v *flagValues, cfg *Config) {
	applyMQTTFlagStrings(fs, v, &cfg.MQTT)
	applyMQTTFlagInts(fs, v, &cfg.MQTT)
	applyMQTTFlagTimeouts(fs, v, &cfg.MQTT)
	applyMQTTFlagTLS(fs, v, &cfg.MQTT)
	applyJobFlags(fs, v, &cfg.Job)
	applyStatsFlags(fs, v, &cfg.Stats)
}

func applyMQTTFlagStrings(fs *pflag.FlagSet, v *flagValues, cfg *MQTTConfig) {
	if fs.Changed("user") {
		cfg.User = v.user
	}
	if fs.Changed("password") {
		cfg.Password = v.password
	}
	if fs.Changed("clientId") {
		cfg.ClientID = v.clientID
	}
	if fs.Changed("host") {
		cfg.Host = v.host
	}
	if fs.Changed("topic") {
		cfg.Topic = v.topic
	}
	if fs.Changed("persistence-dir") {
		cfg.PersistenceDir = v.persistenceDir
	}
}

func applyMQTTFlagInts(fs *pflag.FlagSet, v *flagValues, cfg *MQTTConfig) {
	if fs.Changed("port") {
		cfg.Port = v.port
	}
	if fs.Changed("waitTime") {
		cfg.WaitTime = v.waitTime
	}
	if fs.Changed("qos") {
		cfg.QoS = v.qos
	}
	if fs.Changed("disconnect-timeout") {
		cfg.DisconnectTimeout = v.disconnectTimeout
	}
}

func applyMQTTFlagTimeouts(fs *pflag.FlagSet, v *flagValues, cfg *MQTTConfig) {
	if fs.Changed("keep-alive") {
		cfg.KeepAlive = v.keepAlive
	}
	if fs.Changed("connect-timeout") {
		cfg.ConnectTimeout = v.connectTimeout
	}
	if fs.Changed("write-timeout") {
		cfg.WriteTimeout = v.writeTimeout
	}
	if fs.Changed("subscribe-timeout") {
		cfg.SubscribeTimeout = v.subscribeTimeout
	}
	if fs.Changed("completion-timeout") {
		cfg.CompletionTimeout = v.completionTimeout
	}
	if fs.Changed("max-reconnect-interval") {
		cfg.MaxReconnectInterval = v.maxReconnectInterval
	}
}

func applyMQTTFlagTLS(fs *pflag.FlagSet, v *flagValues, cfg *MQTTConfig) {
	if fs.Changed("ca-cert") {
		cfg.CACert = v.caCert
	}
	if fs.Changed("client-cert") {
		cfg.ClientCert = v.clientCert
	}
	if fs.Changed("client-key") {
		cfg.ClientKey = v.clientKey
	}
	if fs.Changed("tls-insecure-skip") {
		cfg.InsecureSkip = v.insecureSkip
	}
}

func applyJobFlags(fs *pflag.FlagSet, v *flagValues, cfg *JobConfig) {
	if fs.Changed("numMessages") {
		cfg.NumMessages = v.numMessages
	}
	// Changed is false for flags the role did not register
	if fs.Changed("interval") {
		cfg.Interval = v.interval
	}
	if fs.Changed("file") {
		cfg.PayloadFile = v.payloadFile
	}
}

func applyStatsFlags(fs *pflag.FlagSet, v *flagValues, cfg *StatsConfig) {
	if fs.Changed("redis-address") {
		cfg.RedisAddress = v.redisAddress
	}
	if fs.Changed("redis-key-prefix") {
		cfg.KeyPrefix = v.redisKeyPrefix
	}
	if fs.Changed("redis-ttl") {
		cfg.TTL = v.redisTTL
	}
}
